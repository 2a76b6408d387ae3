package dto

// ErrorResponseDTO is the common error response shape.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"not_found"`
}

// MessageResponseDTO is the common plain-message response shape.
type MessageResponseDTO struct {
	Message string `json:"message" example:"post has been deleted"`
}
