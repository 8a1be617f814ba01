package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"team-dashboard/internal/model"
	"team-dashboard/internal/service"
	"team-dashboard/pkg/apierror"
)

type PlayerHandler struct {
	service *service.PlayerService
}

func NewPlayerHandler(service *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{service: service}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.List(r.Context(), chi.URLParam(r, "template_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PlayerList{Players: players}, nil)
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.service.Get(r.Context(), chi.URLParam(r, "template_id"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, player, nil)
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	player, err := h.service.Create(r.Context(), chi.URLParam(r, "template_id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, player, nil)
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	player, err := h.service.Update(r.Context(), chi.URLParam(r, "template_id"), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, player, nil)
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "template_id"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
