package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/GHP-AppointmentService/internal/api/handlers"
)

// userIDHeader заголовок с идентификатором вызывающего пользователя.
// Аутентификацию выполняет API gateway, сюда приходит уже проверенное значение.
const userIDHeader = "X-User-ID"

type userIDContextKey struct{}

// Auth проверяет наличие X-User-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(string)
	return userID, ok
}
