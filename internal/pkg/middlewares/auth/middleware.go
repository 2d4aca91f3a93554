package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"deliveryhub/pkg/logger"
)

const (
	msgNoToken      = "Unauthorized: No token provided"
	msgInvalidToken = "Unauthorized: Invalid token"
)

type callerKey struct{}

// WithCallerID кладет идентификатор аутентифицированного пользователя в контекст.
func WithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerKey{}, callerID)
}

func CallerID(ctx context.Context) (string, bool) {
	callerID, ok := ctx.Value(callerKey{}).(string)
	return callerID, ok && callerID != ""
}

// Middleware требует заголовок "Authorization: Bearer <token>" и проверяет токен через verifier.
func Middleware(log handlerLogger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w, log, msgNoToken)
				return
			}

			callerID, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				).Warn("token verification failed")
				writeUnauthorized(w, log, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), callerID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, log handlerLogger, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		log.Error("failed to write unauthorized response", logger.NewField("error", err))
	}
}
