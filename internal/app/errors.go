package app

type RequestErrorCode string

const (
	ErrInvalidUser   RequestErrorCode = "INVALID_USER"
	ErrInvalidTenant RequestErrorCode = "INVALID_TENANT"
	ErrInvalidScope  RequestErrorCode = "INVALID_SCOPE"
	ErrUnknownUser   RequestErrorCode = "UNKNOWN_USER"
	ErrNotEnrolled   RequestErrorCode = "NOT_ENROLLED"
)

// RequestError reports a request the services refuse to run.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}
