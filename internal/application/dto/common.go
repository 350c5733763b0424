package dto

// ErrorResponse envoltorio estándar de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
