package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	authHandler    authHandler
	uploadHandler  uploadHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"missing required field: title"`
}
