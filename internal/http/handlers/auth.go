package handlers

import (
	"net/http"

	"github.com/pribylovaa/pokedex-api/internal/dto"
	apierrors "github.com/pribylovaa/pokedex-api/internal/errors"
	"github.com/pribylovaa/pokedex-api/internal/http/middleware"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in dto.AuthRegisterRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument(err))
		return
	}

	if _, err := h.Accounts.Register(r.Context(), in.Email, in.Password); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "user registered successfully"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.AuthLoginRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument(err))
		return
	}

	sess, err := h.Accounts.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginFromSession(sess))
}

// Logout доступен только за RequireAuth: отзывает токен запроса.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthorized)
		return
	}

	if err := h.Accounts.Logout(r.Context(), p); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "logged out successfully"})
}
