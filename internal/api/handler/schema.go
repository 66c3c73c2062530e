package handler

// errorResponse documents the error envelope rendered by the central HTTP
// error handler. Swagger-only: handlers never build it themselves.
type errorResponse struct {
	Error string `json:"error"`
}
