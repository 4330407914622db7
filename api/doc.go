// Package api exposes the provider registry over HTTP using Gin.
//
// Routes:
//
//	GET  /health
//	GET  /v1/providers
//	GET  /v1/providers/available
//	POST /v1/providers/:id/validate
//	POST /v1/providers/:id/complete
//	POST /v1/providers/:id/transcribe
//
// Errors are returned as AppError JSON bodies with the matching HTTP status.
package api
