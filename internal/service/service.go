// service содержит бизнес-логику pokedex-api: выпуск, проверку и отзыв
// bearer-токенов, учётные записи, каталог покемонов и личные коллекции.
//
// Основные аспекты:
//   - Service — единственная точка входа для транспорта; кодек токенов и
//     хранилище отзыва скрыты за ним;
//   - отказ в аутентификации — ожидаемый результат, а не исключение:
//     Authenticate возвращает одну из ошибок семейства отказа, причину
//     можно получить через ReasonOf;
//   - экземпляр Service безопасен для конкурентного использования при условии,
//     что переданные хранилище и каталог потокобезопасны.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/pokedex-api/internal/cache"
	"github.com/pribylovaa/pokedex-api/internal/clock"
	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/revocation"
	"github.com/pribylovaa/pokedex-api/internal/storage"
	"github.com/pribylovaa/pokedex-api/internal/token"
)

var (
	// ErrSigningFailed — не удалось выпустить токен. Транспорт: HTTP 500.
	ErrSigningFailed = errors.New("token signing failed")

	// Семейство отказа в аутентификации. Транспорт: всегда HTTP 401
	// с одинаковым телом "invalid token"; конкретная причина только в логах.

	// ErrTokenMalformed — строка не является токеном.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrInvalidSignature — подпись не сходится.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrIssuerMismatch — токен выпущен другим издателем.
	ErrIssuerMismatch = errors.New("token issuer mismatch")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked — токен отозван (logout) и недействителен до своего exp.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidCredentials — пара email/пароль неверна или пользователь не найден.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken — email уже занят. Транспорт: HTTP 409.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidEmail — email имеет некорректный формат. Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword — пароль короче minPasswordLen. Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")
	// ErrInvalidArgument — некорректный параметр запроса. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPokemonNotFound — каталог не знает такого покемона. Транспорт: HTTP 404.
	ErrPokemonNotFound = errors.New("pokemon not found")
)

// Метки причин отказа для логов и метрик.
const (
	ReasonMalformed        = "malformed"
	ReasonInvalidSignature = "invalid_signature"
	ReasonIssuerMismatch   = "issuer_mismatch"
	ReasonExpired          = "expired"
	ReasonRevoked          = "revoked"
)

var rejections = []struct {
	err    error
	reason string
}{
	{ErrTokenMalformed, ReasonMalformed},
	{ErrInvalidSignature, ReasonInvalidSignature},
	{ErrIssuerMismatch, ReasonIssuerMismatch},
	{ErrTokenExpired, ReasonExpired},
	{ErrTokenRevoked, ReasonRevoked},
}

// ReasonOf возвращает метку причины отказа или "", если err не из семейства отказа.
func ReasonOf(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}

	return ""
}

// IsRejected сообщает, что err — отказ в аутентификации.
func IsRejected(err error) bool { return ReasonOf(err) != "" }

// rejection переводит ошибку кодека в ошибку семейства отказа.
func rejection(err error) error {
	switch {
	case errors.Is(err, token.ErrInvalidSignature):
		return ErrInvalidSignature
	case errors.Is(err, token.ErrIssuerMismatch):
		return ErrIssuerMismatch
	case errors.Is(err, token.ErrExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}

// Catalog — источник записей о покемонах.
type Catalog interface {
	PokemonByID(ctx context.Context, id int) (*models.Pokemon, error)
	PokemonByName(ctx context.Context, name string) (*models.Pokemon, error)
}

const defaultMaxConcurrent = 6

// Service описывает бизнес-логику pokedex-api.
type Service struct {
	storage storage.Storage
	codec   *token.Codec
	revoked *revocation.Store
	catalog Catalog
	clock   clock.Clock

	cache    cache.PokemonCache // может быть nil, если кэш не сконфигурирован
	cacheTTL time.Duration

	maxConcurrent int
}

// New создаёт новый экземпляр Service. clk == nil означает системные часы.
func New(st storage.Storage, codec *token.Codec, revoked *revocation.Store, catalog Catalog, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}

	return &Service{
		storage:       st,
		codec:         codec,
		revoked:       revoked,
		catalog:       catalog,
		clock:         clk,
		maxConcurrent: defaultMaxConcurrent,
	}
}

// SetCache устанавливает кэш каталога (опционально).
func (s *Service) SetCache(c cache.PokemonCache, ttl time.Duration) {
	s.cache = c
	s.cacheTTL = ttl
}

// SetMaxConcurrent ограничивает число одновременных запросов к каталогу
// при сборке коллекции. n <= 0 игнорируется.
func (s *Service) SetMaxConcurrent(n int) {
	if n > 0 {
		s.maxConcurrent = n
	}
}
