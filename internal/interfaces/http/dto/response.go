package dto

// Response is the standard API envelope for non-scan endpoints
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the
// request ID for log correlation
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// ScanAcceptedResponse is the legacy wire shape scanner clients expect
// for an accepted scan. The scan endpoint does not use the standard
// envelope; handheld firmware parses these fields directly.
type ScanAcceptedResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ScanErrorResponse is the legacy wire shape for a rejected scan
type ScanErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ScanVerifyFailure is the body of a transition-verification failure:
// the audit row exists but the drum status never moved, so the scanner
// shows the drum still in its old status for manual reconciliation.
type ScanVerifyFailure struct {
	DrumID    int64  `json:"drum_id"`
	OldStatus string `json:"old_status"`
	Message   string `json:"message"`
}
