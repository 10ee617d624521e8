package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the storefront client origin to call the API with cookies.
func CORS(clientURL string) func(http.Handler) http.Handler {
	origins := []string{"http://localhost:3000"}
	if clientURL != "" && clientURL != origins[0] {
		origins = append(origins, clientURL)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", requestIDHeader},
		ExposedHeaders:   []string{AccessTokenHeader, requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
