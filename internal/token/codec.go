// Package token выпускает и проверяет подписанные bearer-токены (JWT, HS256).
//
// Кодек отвечает только за криптографию и структуру токена: подпись,
// издателя и срок жизни. Про отзыв токенов он ничего не знает — это
// политика сервиса (см. internal/service и internal/revocation).
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/pokedex-api/internal/clock"
)

// MinSecretLen — минимальная длина ключа HMAC-SHA-256 в байтах.
const MinSecretLen = 32

var (
	// ErrConfig — ключ подписи пустой или короче MinSecretLen. Фатально на старте.
	ErrConfig = errors.New("invalid signing key")
	// ErrSigning — не удалось подписать токен.
	ErrSigning = errors.New("token signing failed")
	// ErrMalformed — строка не является корректным токеном или в нём нет обязательных клеймов.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature — подпись не сходится или алгоритм не HS256.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrIssuerMismatch — токен выпущен другим издателем.
	ErrIssuerMismatch = errors.New("token issuer mismatch")
	// ErrExpired — текущее время не раньше exp (без допуска на рассинхрон часов).
	ErrExpired = errors.New("token expired")
)

// Claims — доменный набор клеймов токена.
type Claims struct {
	Subject   string
	Email     string
	JTI       string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// jwtClaims — представление Claims на проводе.
type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec подписывает и проверяет токены одним симметричным ключом.
// Ключ и издатель неизменяемы после создания, поэтому Codec безопасен
// для конкурентного использования без синхронизации.
type Codec struct {
	secret []byte
	issuer string
	clock  clock.Clock
}

// New создаёт кодек. Ключ короче MinSecretLen отклоняется с ErrConfig.
func New(secret, issuer string, clk clock.Clock) (*Codec, error) {
	const op = "token.codec.New"

	if err := validateSecret(secret); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(issuer) == "" {
		return nil, fmt.Errorf("%s: %w: empty issuer", op, ErrConfig)
	}

	if clk == nil {
		clk = clock.System{}
	}

	return &Codec{secret: []byte(secret), issuer: issuer, clock: clk}, nil
}

// Issuer возвращает издателя, которым кодек подписывает и проверяет токены.
func (c *Codec) Issuer() string { return c.issuer }

// Issue сериализует клеймы и подписывает их HMAC-SHA-256.
// Поле Claims.Issuer игнорируется: издатель всегда берётся из кодека.
func (c *Codec) Issue(cl Claims) (string, error) {
	const op = "token.codec.Issue"

	if err := validateSecret(string(c.secret)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if cl.JTI == "" || cl.Subject == "" || cl.ExpiresAt.IsZero() {
		return "", fmt.Errorf("%s: %w: jti, sub and exp are required", op, ErrSigning)
	}

	claims := jwtClaims{
		Email: cl.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   cl.Subject,
			ID:        cl.JTI,
			IssuedAt:  jwt.NewNumericDate(cl.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(cl.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrSigning, err)
	}

	return signed, nil
}

// Verify проверяет подпись, издателя и срок жизни токена.
// Проверка «всё или ничего»: при любой ошибке клеймы не возвращаются.
func (c *Codec) Verify(raw string) (Claims, error) {
	const op = "token.codec.Verify"

	var out jwtClaims
	_, err := jwt.ParseWithClaims(raw, &out,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	if out.ID == "" || out.Subject == "" {
		return Claims{}, fmt.Errorf("%s: %w: missing jti or sub", op, ErrMalformed)
	}

	return fromJWT(out), nil
}

// ExtractJTI достаёт jti без проверки подписи. Годится только для токенов,
// которые уже прошли Verify (например, на logout после гейта).
func ExtractJTI(raw string) (string, error) {
	const op = "token.codec.ExtractJTI"

	var out jwtClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrMalformed)
	}

	if out.ID == "" {
		return "", fmt.Errorf("%s: %w: missing jti", op, ErrMalformed)
	}

	return out.ID, nil
}

// classify сводит ошибки jwt к видам ошибок кодека.
// Подпись в jwt/v5 проверяется до клеймов, поэтому подделка всегда даёт ErrInvalidSignature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}

func fromJWT(cl jwtClaims) Claims {
	out := Claims{
		Subject: cl.Subject,
		Email:   cl.Email,
		JTI:     cl.ID,
		Issuer:  cl.Issuer,
	}

	if cl.IssuedAt != nil {
		out.IssuedAt = cl.IssuedAt.Time.UTC()
	}

	if cl.ExpiresAt != nil {
		out.ExpiresAt = cl.ExpiresAt.Time.UTC()
	}

	return out
}

func validateSecret(secret string) error {
	if len(secret) < MinSecretLen {
		return fmt.Errorf("%w: need at least %d bytes, got %d", ErrConfig, MinSecretLen, len(secret))
	}

	return nil
}
