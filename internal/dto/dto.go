// Входные/выходные модели REST API.
package dto

import "time"

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AddPokemonRequest struct {
	PokemonID int `json:"pokemon_id"`
}

type PokemonType struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

type PokemonResponse struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Height int           `json:"height"`
	Weight int           `json:"weight"`
	Types  []PokemonType `json:"types"`
}

type InventoryItem struct {
	PokemonID  int           `json:"pokemon_id"`
	Name       string        `json:"name"`
	Types      []PokemonType `json:"types"`
	CapturedAt time.Time     `json:"captured_at"`
}
