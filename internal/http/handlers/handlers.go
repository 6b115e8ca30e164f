package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/service"
)

// Accounts — учётные записи и выход.
type Accounts interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, p *models.Principal) error
}

// Pokedex — каталог и личные коллекции.
type Pokedex interface {
	PokemonByID(ctx context.Context, id int) (*models.Pokemon, error)
	PokemonByName(ctx context.Context, name string) (*models.Pokemon, error)
	AddPokemon(ctx context.Context, userID string, pokemonID int) error
	Inventory(ctx context.Context, userID string) ([]models.InventoryItem, error)
}

// Handlers агрегирует зависимости REST-хендлеров.
type Handlers struct {
	Accounts Accounts
	Pokedex  Pokedex
}

func New(a Accounts, p Pokedex) *Handlers {
	return &Handlers{Accounts: a, Pokedex: p}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// maxBodyBytes ограничивает размер JSON-тела запроса.
const maxBodyBytes = 1 << 20

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка парсинга -> 400.
func errInvalidArgument(cause error) error {
	return fmt.Errorf("%w: %w", service.ErrInvalidArgument, cause)
}
