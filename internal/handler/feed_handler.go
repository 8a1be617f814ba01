package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"team-dashboard/internal/middleware"
	"team-dashboard/internal/model"
	"team-dashboard/internal/service"
	"team-dashboard/pkg/apierror"
)

const defaultMessageLimit = 50

type FeedHandler struct {
	service *service.FeedService
}

func NewFeedHandler(service *service.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit := defaultMessageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			writeError(w, apierror.New("BAD_REQUEST", "limit must be between 1 and 500", "limit", http.StatusBadRequest))
			return
		}
		limit = parsed
	}

	messages, err := h.service.ListMessages(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MessageList{Messages: messages}, nil)
}

func (h *FeedHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	message, err := h.service.PostMessage(r.Context(), actor, payload.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, message, nil)
}

func (h *FeedHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteMessage(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func (h *FeedHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.ListQuotes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.QuoteList{Quotes: quotes}, nil)
}

func (h *FeedHandler) AddQuote(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	quote, err := h.service.AddQuote(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, quote, nil)
}

func (h *FeedHandler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuote(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func (h *FeedHandler) ListCommendations(w http.ResponseWriter, r *http.Request) {
	commendations, err := h.service.ListCommendations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.CommendationList{Commendations: commendations}, nil)
}

func (h *FeedHandler) AddCommendation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateCommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	commendation, err := h.service.AddCommendation(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, commendation, nil)
}
