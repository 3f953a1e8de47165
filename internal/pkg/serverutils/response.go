package serverutils

// ApiResponse is the common envelope: a success flag plus a payload. "No
// match found" and similar empty outcomes still travel as success=true.
type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ApiErrorResponse struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ApiErrorResponse {
	return ApiErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	}
}
