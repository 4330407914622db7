package errors

import (
	stderrors "errors"
	"net/http"
)

// ErrorResponse is the body glass sends for a failed API call or as the
// payload of an SSE "error" event.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes one failure.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// ToResponse converts e to its wire form.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// Resolve returns the AppError carried by err, or wraps err as an internal
// error. A nil err resolves to nil.
func Resolve(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// ResponseFor returns the HTTP status and body for err, tagged with
// requestID when it is not empty.
func ResponseFor(err error, requestID string) (int, ErrorResponse) {
	appErr := Resolve(err)
	if appErr == nil {
		appErr = Internal(stderrors.New("unknown error"))
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	resp := appErr.ToResponse()
	resp.Error.RequestID = requestID
	return status, resp
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
