// Package api defines the shared response envelopes used by HTTP handlers.
package api

// ErrorResponse is the envelope for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for human-readable status responses.
type MessageResponse struct {
	Detail string `json:"detail"`
}

// TokenResponse is the envelope returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
