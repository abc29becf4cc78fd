package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/looklab/LookLab-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	staffKey  contextKey = "isStaff"

	// HeaderUserID заголовок с идентификатором аутентифицированного пользователя
	HeaderUserID = "X-User-ID"
	// HeaderStaffKey заголовок с ключом персонала салона
	HeaderStaffKey = "X-Staff-Key"
)

// Auth требует заголовок X-User-ID с числовым идентификатором пользователя.
// Идентификатор кладётся в контекст запроса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+HeaderUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffFlag помечает запрос как запрос персонала, если X-Staff-Key совпал
// с настроенным ключом. Не отклоняет запросы - только ставит флаг.
func StaffFlag(configuredKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderStaffKey)
			if provided != "" && configuredKey != "" &&
				subtle.ConstantTimeCompare([]byte(provided), []byte(configuredKey)) == 1 {
				ctx := context.WithValue(r.Context(), staffKey, true)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff пропускает только запросы с валидным ключом персонала.
// Применяется после StaffFlag.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, "требуется ключ персонала")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsStaff сообщает, помечен ли запрос как запрос персонала
func IsStaff(ctx context.Context) bool {
	isStaff, ok := ctx.Value(staffKey).(bool)
	return ok && isStaff
}
