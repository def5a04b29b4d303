package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

const adminKeyHeader = "X-Admin-Key"

// AdminAuth пропускает только запросы с корректным админским ключом.
// Сравнение ключей выполняется за константное время.
func AdminAuth(apiKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminKeyHeader)
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				handlers.RespondUnauthorized(w, "admin authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
