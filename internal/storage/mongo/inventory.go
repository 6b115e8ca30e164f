package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/pokedex-api/internal/models"
)

// inventoryDoc — документ коллекции inventory: один покемон одного пользователя.
type inventoryDoc struct {
	UserID     string    `bson:"user_id"`
	PokemonID  int       `bson:"pokemon_id"`
	CapturedAt time.Time `bson:"captured_at"`
}

// AddPokemon добавляет покемона в коллекцию пользователя.
// Upsert с $setOnInsert: повторное добавление ничего не меняет.
func (m *Mongo) AddPokemon(ctx context.Context, userID string, pokemonID int, capturedAt time.Time) error {
	const op = "storage/mongo/AddPokemon"

	userID = strings.TrimSpace(userID)
	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "pokemon_id", Value: pokemonID}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "user_id", Value: userID},
		{Key: "pokemon_id", Value: pokemonID},
		{Key: "captured_at", Value: toMS(capturedAt)},
	}}}

	_, err := m.inventory.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// Два конкурентных upsert могут столкнуться на уникальном индексе:
		// проигравший видит уже существующую запись, что и требуется.
		if isDuplicateKey(err) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListPokemon возвращает коллекцию пользователя в порядке добавления.
func (m *Mongo) ListPokemon(ctx context.Context, userID string) ([]models.InventoryEntry, error) {
	const op = "storage/mongo/ListPokemon"

	opts := options.Find().SetSort(bson.D{{Key: "captured_at", Value: 1}, {Key: "pokemon_id", Value: 1}})
	cur, err := m.inventory.Find(ctx, bson.D{{Key: "user_id", Value: strings.TrimSpace(userID)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.InventoryEntry, 0)
	for cur.Next(ctx) {
		var doc inventoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		out = append(out, models.InventoryEntry{
			UserID:     doc.UserID,
			PokemonID:  doc.PokemonID,
			CapturedAt: doc.CapturedAt.UTC(),
		})
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}
