// Package apperrors provides the error handling system used across relgate.
// It implements the standard error interface while adding error chaining,
// message customization, and a process exit code carried with the error so
// the CLI can translate any failure into the gate's exit signal.
package apperrors

// Error defines the interface for application errors. It extends the standard
// error interface with methods for error wrapping, message manipulation, and
// exit code management. All methods return Error to support method chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	// Extended methods
	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetExpandError(bool) Error             // controls whether ErrorAll expands wrapped errors
	SetExitCode(int) Error                 // sets the process exit code for the error
	ExitCode() int                         // returns the current exit code
	Prefix(string) Error                   // adds a prefix to the error message
	Suffix(string) Error                   // adds a suffix to the error message
	ErrorAll() string                      // returns full message including wrapped errors
	UnwrapAll() []error                    // returns all wrapped errors
}
