package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/pokedex-api/internal/dto"
	apierrors "github.com/pribylovaa/pokedex-api/internal/errors"
	"github.com/pribylovaa/pokedex-api/internal/http/middleware"
)

func (h *Handlers) GetPokemonByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument(err))
		return
	}

	p, err := h.Pokedex.PokemonByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PokemonFromModel(p))
}

func (h *Handlers) GetPokemonByName(w http.ResponseWriter, r *http.Request) {
	p, err := h.Pokedex.PokemonByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PokemonFromModel(p))
}

func (h *Handlers) AddPokemon(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthorized)
		return
	}

	var in dto.AddPokemonRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument(err))
		return
	}

	if err := h.Pokedex.AddPokemon(r.Context(), p.UserID, in.PokemonID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "pokemon added to inventory"})
}

func (h *Handlers) Inventory(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthorized)
		return
	}

	items, err := h.Pokedex.Inventory(r.Context(), p.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InventoryFromModel(items))
}
