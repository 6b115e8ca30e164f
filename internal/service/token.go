package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
	"github.com/pribylovaa/pokedex-api/internal/token"
)

// accessTokenTTL — фиксированный срок жизни токена.
const accessTokenTTL = time.Hour

// IssueToken выпускает токен со свежим случайным jti (UUIDv4, 122 бита случайности)
// и сроком жизни accessTokenTTL.
func (s *Service) IssueToken(ctx context.Context, userID, email string) (*models.IssuedToken, error) {
	const op = "service.token.IssueToken"

	// exp/iat в JWT хранятся в секундах: округляем заранее,
	// чтобы ExpiresAt в ответе совпадал с клеймом.
	now := s.clock.Now().Truncate(time.Second)
	exp := now.Add(accessTokenTTL)
	jti := uuid.NewString()

	raw, err := s.codec.Issue(token.Claims{
		Subject:   userID,
		Email:     email,
		JTI:       jti,
		IssuedAt:  now,
		ExpiresAt: exp,
	})
	if err != nil {
		log.From(ctx).Error("token_issue_failed",
			slog.String("op", op),
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrSigningFailed, err)
	}

	log.From(ctx).Debug("token_issued",
		slog.String("op", op),
		slog.String("user_id", userID),
		slog.String("jti", jti),
		slog.Time("expires_at", exp),
	)

	return &models.IssuedToken{Token: raw, JTI: jti, ExpiresAt: exp}, nil
}

// Authenticate проверяет токен и его отзыв. Успех — Principal;
// иначе одна из ошибок семейства отказа (см. ReasonOf).
func (s *Service) Authenticate(ctx context.Context, raw string) (*models.Principal, error) {
	const op = "service.token.Authenticate"

	cl, err := s.codec.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, rejection(err), err)
	}

	if s.revoked.IsRevoked(cl.JTI) {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	return &models.Principal{
		UserID:    cl.Subject,
		Email:     cl.Email,
		JTI:       cl.JTI,
		ExpiresAt: cl.ExpiresAt,
	}, nil
}

// Revoke отзывает токен до его exp. Токен должен проходить проверку кодека;
// повторный отзыв уже отозванного токена ничего не меняет.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	const op = "service.token.Revoke"

	cl, err := s.codec.Verify(raw)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, rejection(err), err)
	}

	s.revoke(ctx, cl.JTI, cl.ExpiresAt)
	return nil
}

// RevokePrincipal отзывает уже проверенный гейтом токен без повторной проверки подписи.
func (s *Service) RevokePrincipal(ctx context.Context, p *models.Principal) error {
	const op = "service.token.RevokePrincipal"

	if p == nil || p.JTI == "" {
		return fmt.Errorf("%s: %w: empty principal", op, ErrInvalidArgument)
	}

	s.revoke(ctx, p.JTI, p.ExpiresAt)
	return nil
}

func (s *Service) revoke(ctx context.Context, jti string, exp time.Time) {
	const op = "service.token.revoke"

	added := s.revoked.Add(jti, exp)

	log.From(ctx).Info("token_revoked",
		slog.String("op", op),
		slog.String("jti", jti),
		slog.Time("expires_at", exp),
		slog.Bool("new_record", added),
	)
}
