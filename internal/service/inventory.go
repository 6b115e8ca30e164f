package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
)

// AddPokemon добавляет покемона в коллекцию пользователя.
// Покемон должен существовать в каталоге; повторное добавление ничего не меняет.
func (s *Service) AddPokemon(ctx context.Context, userID string, pokemonID int) error {
	const op = "service.inventory.AddPokemon"

	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%s: %w: empty user id", op, ErrInvalidArgument)
	}

	if _, err := s.PokemonByID(ctx, pokemonID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.AddPokemon(ctx, userID, pokemonID, s.clock.Now()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("pokemon_added",
		slog.String("op", op),
		slog.String("user_id", userID),
		slog.Int("pokemon_id", pokemonID),
	)

	return nil
}

// Inventory возвращает коллекцию пользователя с данными каталога.
// Записи каталога запрашиваются конкурентно (не больше maxConcurrent за раз);
// покемоны, которых каталог больше не знает, пропускаются. Порядок коллекции сохраняется.
func (s *Service) Inventory(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	const op = "service.inventory.Inventory"

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%s: %w: empty user id", op, ErrInvalidArgument)
	}

	entries, err := s.storage.ListPokemon(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	found := make([]*models.InventoryItem, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, e := range entries {
		g.Go(func() error {
			p, err := s.PokemonByID(gctx, e.PokemonID)
			if err != nil {
				if errors.Is(err, ErrPokemonNotFound) {
					log.From(ctx).Warn("inventory_pokemon_missing",
						slog.String("op", op),
						slog.String("user_id", userID),
						slog.Int("pokemon_id", e.PokemonID),
					)
					return nil
				}

				return err
			}

			found[i] = &models.InventoryItem{Pokemon: *p, CapturedAt: e.CapturedAt}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.InventoryItem, 0, len(found))
	for _, it := range found {
		if it != nil {
			out = append(out, *it)
		}
	}

	return out, nil
}
