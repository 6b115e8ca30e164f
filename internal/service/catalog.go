package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pribylovaa/pokedex-api/internal/catalog"
	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
)

// PokemonByID возвращает покемона по id (id > 0).
func (s *Service) PokemonByID(ctx context.Context, id int) (*models.Pokemon, error) {
	const op = "service.catalog.PokemonByID"

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w: id must be positive", op, ErrInvalidArgument)
	}

	p, err := s.lookup(ctx, strconv.Itoa(id), func(ctx context.Context) (*models.Pokemon, error) {
		return s.catalog.PokemonByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// PokemonByName возвращает покемона по имени (без учёта регистра).
func (s *Service) PokemonByName(ctx context.Context, name string) (*models.Pokemon, error) {
	const op = "service.catalog.PokemonByName"

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("%s: %w: empty name", op, ErrInvalidArgument)
	}

	p, err := s.lookup(ctx, name, func(ctx context.Context) (*models.Pokemon, error) {
		return s.catalog.PokemonByName(ctx, name)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// lookup читает запись через кэш. Ошибки кэша не фатальны: пишем в лог и идём в каталог.
func (s *Service) lookup(ctx context.Context, key string, fetch func(context.Context) (*models.Pokemon, error)) (*models.Pokemon, error) {
	const op = "service.catalog.lookup"

	lg := log.From(ctx)

	if s.cache != nil {
		p, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			lg.Warn("catalog_cache_get_failed",
				slog.String("op", op),
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		case ok:
			return p, nil
		}
	}

	p, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrPokemonNotFound
		}

		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, p, s.cacheTTL); err != nil {
			lg.Warn("catalog_cache_set_failed",
				slog.String("op", op),
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}
	}

	return p, nil
}
