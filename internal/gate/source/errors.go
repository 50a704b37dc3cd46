package source

import (
	"github.com/fmi-build-tools/relgate/internal/common/apperrors"
)

var (
	// ErrSource is the base error for all version source failures.
	ErrSource = apperrors.New("version source error").SetExitCode(1)

	// ErrNotAReleaseTag indicates a tag that lacks the release prefix or a
	// ref that does not point at a tag. Readers are never invoked for it.
	ErrNotAReleaseTag = ErrSource.New("not a release tag")

	// ErrFieldNotFound indicates a readable source with no version declaration.
	ErrFieldNotFound = ErrSource.New("version field not found")

	// ErrDuplicateField indicates more than one version declaration in a
	// single source. The gate never resolves these by precedence.
	ErrDuplicateField = ErrSource.New("duplicate version field")

	// ErrSourceUnreadable indicates the underlying file could not be read
	// or parsed at all.
	ErrSourceUnreadable = ErrSource.New("source unreadable").SetExpandError(true)
)
