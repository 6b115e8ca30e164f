package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/pokedex-api/internal/clock"
	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/revocation"
	"github.com/pribylovaa/pokedex-api/internal/token"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "pokedex-api"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func mustCodec(t *testing.T, secret, issuer string, clk clock.Clock) *token.Codec {
	t.Helper()
	c, err := token.New(secret, issuer, clk)
	require.NoError(t, err)
	return c
}

// newTokenSvc собирает Service без хранилища и каталога: токенам они не нужны.
func newTokenSvc(t *testing.T) (*Service, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(base)
	codec := mustCodec(t, testSecret, testIssuer, clk)
	return New(nil, codec, revocation.New(clk, 4), nil, clk), clk
}

func tamper(raw string) string {
	i := strings.LastIndex(raw, ".") + 1
	c := byte('A')
	if raw[i] == 'A' {
		c = 'B'
	}
	return raw[:i] + string(c) + raw[i+1:]
}

func TestIssueToken_Authenticate_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenSvc(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.JTI)
	require.Equal(t, base.Add(time.Hour), issued.ExpiresAt)

	p, err := svc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", p.UserID)
	require.Equal(t, "a@b.com", p.Email)
	require.Equal(t, issued.JTI, p.JTI)
	require.Equal(t, issued.ExpiresAt, p.ExpiresAt)
}

func TestIssueToken_TruncatesToSeconds(t *testing.T) {
	t.Parallel()

	svc, clk := newTokenSvc(t)
	clk.Set(base.Add(750 * time.Millisecond))

	issued, err := svc.IssueToken(context.Background(), "u1", "a@b.com")
	require.NoError(t, err)
	require.Equal(t, base.Add(time.Hour), issued.ExpiresAt)
}

func TestIssueToken_SigningFailed(t *testing.T) {
	t.Parallel()

	// Нулевой кодек без ключа подписывать отказывается.
	svc := New(nil, &token.Codec{}, revocation.New(nil, 1), nil, nil)

	_, err := svc.IssueToken(context.Background(), "u1", "a@b.com")
	require.ErrorIs(t, err, ErrSigningFailed)
	require.False(t, IsRejected(err))
}

func TestAuthenticate_Rejections(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenSvc(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		raw    string
		want   error
		reason string
	}{
		{"empty", "", ErrTokenMalformed, ReasonMalformed},
		{"garbage", "not-a-token", ErrTokenMalformed, ReasonMalformed},
		{"tampered signature", tamper(issued.Token), ErrInvalidSignature, ReasonInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.raw)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, tt.reason, ReasonOf(err))
		})
	}
}

func TestAuthenticate_OtherIssuerOrKey(t *testing.T) {
	t.Parallel()

	svc, clk := newTokenSvc(t)
	ctx := context.Background()

	otherIssuer := New(nil, mustCodec(t, testSecret, "someone-else", clk), revocation.New(clk, 1), nil, clk)
	otherKey := New(nil, mustCodec(t, strings.Repeat("k", 32), testIssuer, clk), revocation.New(clk, 1), nil, clk)

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	_, err = otherIssuer.Authenticate(ctx, issued.Token)
	require.ErrorIs(t, err, ErrIssuerMismatch)
	require.Equal(t, ReasonIssuerMismatch, ReasonOf(err))

	_, err = otherKey.Authenticate(ctx, issued.Token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestAuthenticate_Expired(t *testing.T) {
	t.Parallel()

	svc, clk := newTokenSvc(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	clk.Set(issued.ExpiresAt.Add(-time.Second))
	_, err = svc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)

	// Допуска нет: в момент exp токен уже недействителен.
	clk.Set(issued.ExpiresAt)
	_, err = svc.Authenticate(ctx, issued.Token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.Equal(t, ReasonExpired, ReasonOf(err))
}

func TestRevoke_ThenRejectedUntilExpiry(t *testing.T) {
	t.Parallel()

	svc, clk := newTokenSvc(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, issued.Token))

	for i := 0; i < 3; i++ {
		_, err = svc.Authenticate(ctx, issued.Token)
		require.ErrorIs(t, err, ErrTokenRevoked)
		require.Equal(t, ReasonRevoked, ReasonOf(err))
	}

	// Повторный отзыв идемпотентен.
	require.NoError(t, svc.Revoke(ctx, issued.Token))
	require.Equal(t, 1, svc.revoked.Len())

	// После естественного истечения запись мертва, а токен отклоняется как просроченный.
	clk.Set(issued.ExpiresAt)
	require.False(t, svc.revoked.IsRevoked(issued.JTI))
	_, err = svc.Authenticate(ctx, issued.Token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevoke_InvalidTokenPropagatesRejection(t *testing.T) {
	t.Parallel()

	svc, clk := newTokenSvc(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Revoke(ctx, "garbage"), ErrTokenMalformed)

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)
	require.ErrorIs(t, svc.Revoke(ctx, tamper(issued.Token)), ErrInvalidSignature)

	clk.Advance(2 * time.Hour)
	require.ErrorIs(t, svc.Revoke(ctx, issued.Token), ErrTokenExpired)
	require.Equal(t, 0, svc.revoked.Len())
}

func TestRevokePrincipal(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenSvc(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokePrincipal(ctx, p))
	_, err = svc.Authenticate(ctx, issued.Token)
	require.ErrorIs(t, err, ErrTokenRevoked)

	require.ErrorIs(t, svc.RevokePrincipal(ctx, nil), ErrInvalidArgument)
	require.ErrorIs(t, svc.RevokePrincipal(ctx, &models.Principal{}), ErrInvalidArgument)
}

func TestScenario_RevocationIsPerToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenSvc(t)
	ctx := context.Background()

	first, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, first.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, first.Token))
	_, err = svc.Authenticate(ctx, first.Token)
	require.ErrorIs(t, err, ErrTokenRevoked)

	second, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)
	require.NotEqual(t, first.JTI, second.JTI)

	p, err := svc.Authenticate(ctx, second.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", p.UserID)
}

func TestIssueToken_ConcurrentDistinctJTI(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenSvc(t)
	ctx := context.Background()

	const n = 1000
	jtis := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
			if err == nil {
				jtis[i] = issued.JTI
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, j := range jtis {
		require.NotEmpty(t, j)
		seen[j] = struct{}{}
	}
	require.Len(t, seen, n)
}

func TestRevokeAuthenticate_Concurrent(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenSvc(t)
	ctx := context.Background()

	issued, err := svc.IssueToken(ctx, "u1", "a@b.com")
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := svc.Revoke(ctx, issued.Token); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Authenticate(ctx, issued.Token)
			if err != nil && !errors.Is(err, ErrTokenRevoked) {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Все Revoke вернулись: дальше токен всегда отклоняется.
	_, err = svc.Authenticate(ctx, issued.Token)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestReasonOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", ReasonOf(nil))
	require.Equal(t, "", ReasonOf(errors.New("boom")))
	require.Equal(t, "", ReasonOf(ErrInvalidCredentials))
	require.Equal(t, ReasonRevoked, ReasonOf(errors.Join(errors.New("ctx"), ErrTokenRevoked)))
	require.True(t, IsRejected(ErrTokenExpired))
	require.False(t, IsRejected(ErrSigningFailed))
}
