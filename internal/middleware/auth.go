package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aidar/rat-api/internal/domain"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// IdentityClaimKey ключ контекста для claim'а идентичности
const IdentityClaimKey ContextKey = "identity_claim"

// TokenValidator проверяет bearer токен и возвращает claim идентичности
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// IdentityMiddleware извлекает claim идентичности из запроса.
//
// Источники по порядку: заголовок Authorization (Bearer JWT), затем доверенный
// заголовок шлюза identityHeader (если задан). Запрос без claim'а пропускается
// дальше: решение о доступе принимает обработчик
func IdentityMiddleware(validator TokenValidator, identityHeader string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claim string

			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				// Проверяем формат Bearer
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || parts[0] != "Bearer" {
					http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid authorization header format"}}`, http.StatusUnauthorized)
					return
				}

				// Валидируем токен
				subject, err := validator.ValidateToken(parts[1])
				if err != nil {
					http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`, http.StatusUnauthorized)
					return
				}
				claim = subject
			}

			if claim == "" && identityHeader != "" {
				claim = r.Header.Get(identityHeader)
			}

			claim = domain.NormalizeClaim(claim)
			if claim == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityClaimKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityClaimFromContext извлекает claim идентичности из контекста
func GetIdentityClaimFromContext(ctx context.Context) string {
	claim, ok := ctx.Value(IdentityClaimKey).(string)
	if !ok {
		return ""
	}
	return claim
}
