package response

// ErrorKind classifies a failed Result so the transport can pick a status
// code without reading the message.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindTransient    ErrorKind = "transient"
	KindUnexpected   ErrorKind = "unexpected"
)

// Result is the return value of every service operation.
type Result[T any] struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    T         `json:"data,omitempty"`
	Errors  []string  `json:"errors,omitempty"`
	Kind    ErrorKind `json:"-"`
}

func Ok[T any](data T, message string) Result[T] {
	return Result[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Fail[T any](kind ErrorKind, message string, errs ...string) Result[T] {
	return Result[T]{
		Success: false,
		Message: message,
		Errors:  errs,
		Kind:    kind,
	}
}
