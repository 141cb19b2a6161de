package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS настройки кросс-доменных запросов для браузерных клиентов
func CORS(allowedOrigins []string, maxAge int) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", HeaderUserID, HeaderUserRole},
		MaxAge:         maxAge,
	})
}
