package models

import "time"

// Pokemon — запись внешнего каталога (PokeAPI).
type Pokemon struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Height int           `json:"height"`
	Weight int           `json:"weight"`
	Types  []PokemonType `json:"types"`
}

// PokemonType — тип покемона в слоте.
type PokemonType struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// InventoryEntry — покемон в личной коллекции пользователя.
type InventoryEntry struct {
	UserID     string
	PokemonID  int
	CapturedAt time.Time
}

// InventoryItem — запись коллекции, дополненная данными каталога.
type InventoryItem struct {
	Pokemon    Pokemon
	CapturedAt time.Time
}
