package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the URL to audit is malformed or not http(s) (HTTP 422).
	InvalidInput
	// FetchFailed indicates the page itself could not be fetched (HTTP 400).
	FetchFailed
	// Timeout indicates the audit as a whole ran past its deadline (HTTP 504).
	Timeout
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case FetchFailed:
		return "fetch_failed"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
