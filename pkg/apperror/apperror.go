package apperror

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the error taxonomy. Callers classify failures with
// errors.Is and the helpers below; constructors wrap an underlying cause
// so the original error stays reachable through errors.Unwrap.
var (
	// ErrNotFound indicates a notebook, collection or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates rejected input: a bad notebook name, a missing
	// required prompt field, an unsupported file extension.
	ErrValidation = errors.New("validation failed")

	// ErrIO indicates a read, write or parse failure.
	ErrIO = errors.New("io failure")

	// ErrProvider indicates an LLM call failed or is misconfigured.
	ErrProvider = errors.New("provider failure")

	// ErrConfig indicates malformed configuration or a missing required
	// environment variable / API key.
	ErrConfig = errors.New("config failure")
)

type wrapped struct {
	kind error
	msg  string
	err  error
}

func (w *wrapped) Error() string {
	if w.err != nil {
		return w.msg + ": " + w.err.Error()
	}
	return w.msg
}

func (w *wrapped) Unwrap() []error {
	if w.err != nil {
		return []error{w.kind, w.err}
	}
	return []error{w.kind}
}

func newWrapped(kind error, err error, format string, args ...interface{}) error {
	return &wrapped{
		kind: kind,
		msg:  fmt.Sprintf(format, args...),
		err:  err,
	}
}

func NotFound(format string, args ...interface{}) error {
	return newWrapped(ErrNotFound, nil, format, args...)
}

func Validation(format string, args ...interface{}) error {
	return newWrapped(ErrValidation, nil, format, args...)
}

func IO(err error, format string, args ...interface{}) error {
	return newWrapped(ErrIO, err, format, args...)
}

func Provider(err error, format string, args ...interface{}) error {
	return newWrapped(ErrProvider, err, format, args...)
}

func Config(err error, format string, args ...interface{}) error {
	return newWrapped(ErrConfig, err, format, args...)
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsIO(err error) bool         { return errors.Is(err, ErrIO) }
func IsProvider(err error) bool   { return errors.Is(err, ErrProvider) }
func IsConfig(err error) bool     { return errors.Is(err, ErrConfig) }
