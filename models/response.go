package models

type MessageResponse struct {
	Message string `json:"message"`
}

type AddToCartResponse struct {
	Message    string `json:"message"`
	CartItemID string `json:"cartItemId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
