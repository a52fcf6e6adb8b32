package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",       // local dev
	"https://app.pitchpartner.it", // dashboard
	"https://pitchpartner.it",     // public proposal pages
	"https://www.pitchpartner.it", // public proposal pages
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-PP-Token", "Idempotency-Key", "X-Requested-With"},
		ExposedHeaders:   []string{"X-PP-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
