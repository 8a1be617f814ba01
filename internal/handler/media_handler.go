package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"team-dashboard/internal/middleware"
	"team-dashboard/internal/model"
	"team-dashboard/internal/service"
	"team-dashboard/pkg/apierror"
)

type MediaHandler struct {
	service       *service.MediaService
	maxUploadSize int64
}

func NewMediaHandler(service *service.MediaService, maxUploadSize int64) *MediaHandler {
	return &MediaHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MediaList{Items: items}, nil)
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, apierror.New("PAYLOAD_TOO_LARGE", "upload exceeds the size limit", "", http.StatusRequestEntityTooLarge))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "multipart field 'file' is required", "file", http.StatusBadRequest))
		return
	}
	defer file.Close()

	item, err := h.service.Upload(r.Context(), actor.ID, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, item, nil)
}

// Download streams the original file. Content is served inline; the browser
// decides how to render it from the stored content type.
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	file, record, err := h.service.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", record.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(record.SizeBytes, 10))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = io.Copy(w, file)
}

func (h *MediaHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, _ = strconv.Atoi(raw)
	}

	file, err := h.service.Thumbnail(r.Context(), chi.URLParam(r, "id"), size)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	_, _ = io.Copy(w, file)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
