package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"team-dashboard/internal/middleware"
	"team-dashboard/internal/model"
	"team-dashboard/internal/service"
	"team-dashboard/pkg/apierror"
)

type TemplateHandler struct {
	service *service.TemplateService
}

func NewTemplateHandler(service *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// List returns the templates visible to the caller. Admins see everything so
// they can manage restricted work-areas they are not members of.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var (
		templates []model.Template
		err       error
	)
	if identity.Role == model.RoleAdmin {
		templates, err = h.service.ListAll(r.Context())
	} else {
		templates, err = h.service.ListVisible(r.Context(), identity.ID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.TemplateList{Templates: templates}, nil)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	template, err := h.service.Get(r.Context(), chi.URLParam(r, "template_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, template, nil)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	template, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, template, nil)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	template, err := h.service.Update(r.Context(), chi.URLParam(r, "template_id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, template, nil)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "template_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func (h *TemplateHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.Members(r.Context(), chi.URLParam(r, "template_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, members, nil)
}

func (h *TemplateHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "template_id")
	userID := chi.URLParam(r, "user_id")

	if err := h.service.AddMember(r.Context(), templateID, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"added": true}, nil)
}

func (h *TemplateHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "template_id")
	userID := chi.URLParam(r, "user_id")

	if err := h.service.RemoveMember(r.Context(), templateID, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"removed": true}, nil)
}
