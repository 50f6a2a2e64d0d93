package response

import "errors"

// Единый конверт ответа API: {success, data?, error?}.
type Response struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
var (
	FAILED_REQUEST     = "REQUEST_FAILED"
	INVALID_INPUT      = "INVALID_INPUT"
	NOT_FOUND          = "NOT_FOUND"
	CONFLICT           = "CONFLICT"
	OUT_OF_SCHEDULE    = "OUT_OF_SCHEDULE"
	INVALID_TRANSITION = "INVALID_TRANSITION"
	FORBIDDEN          = "FORBIDDEN"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("scheduling conflict")
	ErrOutOfSchedule     = errors.New("outside working hours")
	ErrInvalidTransition = errors.New("invalid status transition")
)

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func Error(code, msg string) Response {
	return Response{
		Success: false,
		Error:   &ResponseError{Code: code, Message: msg},
	}
}
