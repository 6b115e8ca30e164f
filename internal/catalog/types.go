package catalog

import "github.com/pribylovaa/pokedex-api/internal/models"

// pokemonResponse — подмножество ответа GET /pokemon/{key}.
type pokemonResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"type"`
	} `json:"types"`
}

func (r pokemonResponse) toModel() *models.Pokemon {
	p := &models.Pokemon{
		ID:     r.ID,
		Name:   r.Name,
		Height: r.Height,
		Weight: r.Weight,
		Types:  make([]models.PokemonType, 0, len(r.Types)),
	}

	for _, t := range r.Types {
		p.Types = append(p.Types, models.PokemonType{
			Slot: t.Slot,
			Name: t.Type.Name,
			URL:  t.Type.URL,
		})
	}

	return p
}
