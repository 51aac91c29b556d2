package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	blogHandler    blogHandler
	sitemapHandler sitemapHandler
	uploadHandler  uploadHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Message string `json:"message" example:"blog not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
}
