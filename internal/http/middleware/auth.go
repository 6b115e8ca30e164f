package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/pokedex-api/internal/errors"
	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
	"github.com/pribylovaa/pokedex-api/internal/service"
	"github.com/pribylovaa/pokedex-api/internal/token"
)

// OutcomeAccepted и OutcomeMissing — метки решений гейта помимо причин отказа сервиса.
const (
	OutcomeAccepted = "accepted"
	OutcomeMissing  = "missing"
)

// Authenticator проверяет bearer-токен.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*models.Principal, error)
}

// AuthRecorder принимает решения гейта (для метрик).
type AuthRecorder interface {
	AuthDecision(outcome string)
}

type principalKey struct{}

// WithPrincipal кладёт Principal в контекст.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom достаёт Principal, положенный RequireAuth.
func PrincipalFrom(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*models.Principal)
	return p, ok && p != nil
}

// RequireAuth — гейт аутентификации защищённых маршрутов.
//
// Ожидает ровно один заголовок "Authorization: Bearer <token>". Успех — Principal
// в контексте запроса и дальше по цепочке. Любой отказ — 401 с одинаковым телом
// "invalid token"; причина (malformed/expired/revoked/...) пишется только в лог
// и метрику. Хранилище отзыва гейт не меняет никогда.
func RequireAuth(auth Authenticator, rec AuthRecorder) Middleware {
	record := func(outcome string) {
		if rec != nil {
			rec.AuthDecision(outcome)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "http.middleware.RequireAuth"

			ctx := r.Context()
			lg := log.From(ctx)

			raw, ok := bearerToken(r.Header.Values("Authorization"))
			if !ok {
				record(OutcomeMissing)
				lg.Info("auth_rejected",
					slog.String("op", op),
					slog.String("reason", OutcomeMissing),
					slog.String("path", r.URL.Path),
				)
				apierrors.WriteError(w, r, apierrors.ErrUnauthorized)
				return
			}

			p, err := auth.Authenticate(ctx, raw)
			if err != nil {
				reason := service.ReasonOf(err)
				if reason == "" {
					// Не отказ, а сбой проверки: отдаём как есть (500).
					lg.Error("auth_failed",
						slog.String("op", op),
						slog.String("err", err.Error()),
					)
					apierrors.WriteError(w, r, fmt.Errorf("%s: %w", op, err))
					return
				}

				record(reason)
				attrs := []any{
					slog.String("op", op),
					slog.String("reason", reason),
					slog.String("path", r.URL.Path),
				}
				if jti, ok := verifiedJTI(reason, raw); ok {
					attrs = append(attrs, slog.String("jti", jti))
				}
				lg.Info("auth_rejected", attrs...)
				apierrors.WriteError(w, r, err)
				return
			}

			record(OutcomeAccepted)

			ctx = WithPrincipal(ctx, p)
			ctx = log.With(ctx, slog.String("user_id", p.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifiedJTI отдаёт jti для лога только при отказах, где подпись уже
// проверена кодеком (revoked, expired). В остальных случаях jti мог
// прийти из поддельного токена и в лог не попадает.
func verifiedJTI(reason, raw string) (string, bool) {
	if reason != service.ReasonRevoked && reason != service.ReasonExpired {
		return "", false
	}

	jti, err := token.ExtractJTI(raw)
	if err != nil {
		return "", false
	}

	return jti, true
}

// bearerToken разбирает заголовок Authorization. Схема без учёта регистра,
// между схемой и токеном ровно один пробел, в токене пробелов нет.
// Несколько заголовков Authorization считаются ошибкой.
func bearerToken(values []string) (string, bool) {
	if len(values) != 1 {
		return "", false
	}

	scheme, tok, ok := strings.Cut(values[0], " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	if tok == "" || strings.ContainsAny(tok, " \t") {
		return "", false
	}

	return tok, true
}
