package apperrors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("TestError", func(t *testing.T) {
		ErrBaseErr := New("base error")
		assert.Equal(t, "base error", ErrBaseErr.Error())
		assert.Equal(t, "msg", ErrBaseErr.New("msg").Error())
		assert.ErrorIs(t, ErrBaseErr, ErrBaseErr)

		ErrFirstLevel := ErrBaseErr.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBaseErr)

		ErrAnotherErr := New("another error")
		ErrAnotherErrMsg := ErrAnotherErr.Msg("another error msg")
		ErrWrappedErr := ErrFirstLevel.Err(ErrAnotherErrMsg)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrFirstLevel)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErrMsg)

		err := errors.New("error")
		ErrWrappedErr = ErrFirstLevel.Err(err)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)

		ErrWrappedErr = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)

		ErrAnotherGoErr := fmt.Errorf("another error")
		ErrYetAnotherGoErr := fmt.Errorf("yet another error")
		ErrWrappedGoErr := ErrFirstLevel.Err(ErrAnotherGoErr, ErrYetAnotherGoErr)
		assert.Equal(t, "first level", ErrWrappedGoErr.Error())
		assert.ErrorIs(t, ErrWrappedGoErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedGoErr, ErrAnotherGoErr)
		assert.ErrorIs(t, ErrWrappedGoErr, ErrYetAnotherGoErr)
	})

	t.Run("TestExitCode", func(t *testing.T) {
		ErrRejected := New("rejected").SetExitCode(1)
		assert.Equal(t, 1, ErrRejected.ExitCode())

		// derived errors inherit the exit code
		ErrCause := ErrRejected.New("specific cause")
		assert.Equal(t, 1, ErrCause.ExitCode())
		assert.Equal(t, 1, ErrCause.Msg("wrapped").ExitCode())
	})

	t.Run("TestExpandError", func(t *testing.T) {
		ErrBase := New("base").SetExpandError(true)
		wrapped := ErrBase.MsgErr("outer", errors.New("inner"))
		assert.Equal(t, "outer", wrapped.Error())
		expanded := wrapped.SetExpandError(true).ErrorAll()
		assert.Contains(t, expanded, "outer")
		assert.Contains(t, expanded, "inner")
	})

	t.Run("TestPrefixSuffix", func(t *testing.T) {
		err := New("message").Prefix("manifest").Suffix("setup.py")
		assert.Equal(t, "manifest: message: setup.py", err.Error())
		// original untouched
		assert.Equal(t, "message", New("message").Error())
	})
}
