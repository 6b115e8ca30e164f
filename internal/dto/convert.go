package dto

import "github.com/pribylovaa/pokedex-api/internal/models"

func LoginFromSession(s *models.Session) LoginResponse {
	if s == nil {
		return LoginResponse{}
	}

	return LoginResponse{
		UserID:    s.UserID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC(),
	}
}

func PokemonFromModel(p *models.Pokemon) PokemonResponse {
	if p == nil {
		return PokemonResponse{Types: []PokemonType{}}
	}

	return PokemonResponse{
		ID:     p.ID,
		Name:   p.Name,
		Height: p.Height,
		Weight: p.Weight,
		Types:  typesFromModel(p.Types),
	}
}

func InventoryFromModel(items []models.InventoryItem) []InventoryItem {
	out := make([]InventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, InventoryItem{
			PokemonID:  it.Pokemon.ID,
			Name:       it.Pokemon.Name,
			Types:      typesFromModel(it.Pokemon.Types),
			CapturedAt: it.CapturedAt.UTC(),
		})
	}

	return out
}

func typesFromModel(ts []models.PokemonType) []PokemonType {
	out := make([]PokemonType, 0, len(ts))
	for _, t := range ts {
		out = append(out, PokemonType{Slot: t.Slot, Name: t.Name})
	}

	return out
}
