package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"metaclassroom/internal/videogen"
)

// VideoHandler proxies the external video generation service.
type VideoHandler struct {
	client *videogen.Client
}

func NewVideoHandler(client *videogen.Client) *VideoHandler {
	return &VideoHandler{client: client}
}

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form videogen.Form
	if !decodeJSON(w, r, &form) {
		return
	}

	req, err := videogen.ParseForm(form)
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := h.client.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, VideoCreatedResponse{URL: url})
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.client.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, VideoView{Video: v, URL: h.client.PlaybackURL(v.Path)})
	}
	respondJSON(w, http.StatusOK, VideoListResponse{Videos: views})
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
