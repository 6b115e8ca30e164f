package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/pokedex-api/internal/catalog"
	"github.com/pribylovaa/pokedex-api/internal/models"
)

func TestAddPokemon_OK(t *testing.T) {
	t.Parallel()

	svc, st, cat, _ := newSvc(t)

	cat.EXPECT().PokemonByID(gomock.Any(), 25).Return(pikachu(), nil)
	st.EXPECT().AddPokemon(gomock.Any(), "u1", 25, base).Return(nil)

	require.NoError(t, svc.AddPokemon(context.Background(), "u1", 25))
}

func TestAddPokemon_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvc(t)

	require.ErrorIs(t, svc.AddPokemon(context.Background(), "", 25), ErrInvalidArgument)
	require.ErrorIs(t, svc.AddPokemon(context.Background(), "u1", 0), ErrInvalidArgument)
}

func TestAddPokemon_UnknownPokemon(t *testing.T) {
	t.Parallel()

	svc, _, cat, _ := newSvc(t)

	// До хранилища дело не доходит.
	cat.EXPECT().PokemonByID(gomock.Any(), 4242).Return(nil, catalog.ErrNotFound)

	require.ErrorIs(t, svc.AddPokemon(context.Background(), "u1", 4242), ErrPokemonNotFound)
}

func TestAddPokemon_StorageError(t *testing.T) {
	t.Parallel()

	svc, st, cat, _ := newSvc(t)
	boom := errors.New("db down")

	cat.EXPECT().PokemonByID(gomock.Any(), 25).Return(pikachu(), nil)
	st.EXPECT().AddPokemon(gomock.Any(), "u1", 25, gomock.Any()).Return(boom)

	require.ErrorIs(t, svc.AddPokemon(context.Background(), "u1", 25), boom)
}

func TestInventory_KeepsOrderAndDropsMissing(t *testing.T) {
	t.Parallel()

	svc, st, cat, _ := newSvc(t)

	entries := []models.InventoryEntry{
		{UserID: "u1", PokemonID: 1, CapturedAt: base},
		{UserID: "u1", PokemonID: 999, CapturedAt: base.Add(time.Minute)},
		{UserID: "u1", PokemonID: 25, CapturedAt: base.Add(2 * time.Minute)},
	}
	st.EXPECT().ListPokemon(gomock.Any(), "u1").Return(entries, nil)

	cat.EXPECT().PokemonByID(gomock.Any(), 1).Return(&models.Pokemon{ID: 1, Name: "bulbasaur"}, nil)
	cat.EXPECT().PokemonByID(gomock.Any(), 999).Return(nil, catalog.ErrNotFound)
	cat.EXPECT().PokemonByID(gomock.Any(), 25).Return(pikachu(), nil)

	items, err := svc.Inventory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "bulbasaur", items[0].Pokemon.Name)
	require.Equal(t, base, items[0].CapturedAt)
	require.Equal(t, "pikachu", items[1].Pokemon.Name)
	require.Equal(t, base.Add(2*time.Minute), items[1].CapturedAt)
}

func TestInventory_Empty(t *testing.T) {
	t.Parallel()

	svc, st, _, _ := newSvc(t)
	st.EXPECT().ListPokemon(gomock.Any(), "u1").Return([]models.InventoryEntry{}, nil)

	items, err := svc.Inventory(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestInventory_CatalogErrorFails(t *testing.T) {
	t.Parallel()

	svc, st, cat, _ := newSvc(t)
	boom := errors.New("catalog unavailable")

	st.EXPECT().ListPokemon(gomock.Any(), "u1").
		Return([]models.InventoryEntry{{UserID: "u1", PokemonID: 1}}, nil)
	cat.EXPECT().PokemonByID(gomock.Any(), 1).Return(nil, boom)

	_, err := svc.Inventory(context.Background(), "u1")
	require.ErrorIs(t, err, boom)
}

func TestInventory_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	svc, st, cat, _ := newSvc(t)
	svc.SetMaxConcurrent(2)

	const n = 10
	entries := make([]models.InventoryEntry, n)
	for i := range entries {
		entries[i] = models.InventoryEntry{UserID: "u1", PokemonID: i + 1}
	}
	st.EXPECT().ListPokemon(gomock.Any(), "u1").Return(entries, nil)

	var inFlight, peak atomic.Int32
	cat.EXPECT().PokemonByID(gomock.Any(), gomock.Any()).Times(n).
		DoAndReturn(func(_ context.Context, id int) (*models.Pokemon, error) {
			cur := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return &models.Pokemon{ID: id, Name: fmt.Sprintf("p%d", id)}, nil
		})

	items, err := svc.Inventory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, n)
	require.LessOrEqual(t, peak.Load(), int32(2))
	for i, it := range items {
		require.Equal(t, i+1, it.Pokemon.ID)
	}
}

func TestInventory_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvc(t)

	_, err := svc.Inventory(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
