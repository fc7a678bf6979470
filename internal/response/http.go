package response

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse carries the user-displayable message and, for domain failures, its code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Page wraps a listing with the totals computed over it.
type Page[T any, S any] struct {
	Items   []T `json:"items"`
	Summary S   `json:"summary"`
}
