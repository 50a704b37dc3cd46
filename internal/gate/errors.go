package gate

import (
	"github.com/fmi-build-tools/relgate/internal/common/apperrors"
)

var (
	// ErrGate is the base error for gate evaluation failures.
	ErrGate = apperrors.New("gate error").SetExitCode(1)

	// ErrInconsistent indicates that the tag, manifest, and package versions
	// do not all agree.
	ErrInconsistent = ErrGate.New("version declarations are inconsistent")
)
