package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"metaclassroom/internal/models"
	"metaclassroom/internal/service"
)

// AudiobookHandler serves the audiobook library.
type AudiobookHandler struct {
	audiobooks *service.AudiobookService
}

func NewAudiobookHandler(audiobooks *service.AudiobookService) *AudiobookHandler {
	return &AudiobookHandler{audiobooks: audiobooks}
}

func (h *AudiobookHandler) Topics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, TopicsResponse{Topics: service.Topics()})
}

func (h *AudiobookHandler) Library(w http.ResponseWriter, r *http.Request) {
	uid := GetUserFromContext(r.Context()).UID()
	books, err := h.audiobooks.Library(uid)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]AudiobookView, 0, len(books))
	for _, b := range books {
		views = append(views, newAudiobookView(b))
	}
	respondJSON(w, http.StatusOK, LibraryResponse{Audiobooks: views, Playing: h.audiobooks.Playing(uid)})
}

// Create renders free text, or a predefined topic when "topic" is set.
func (h *AudiobookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AudiobookRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	uid := GetUserFromContext(r.Context()).UID()
	var (
		book   *models.Audiobook
		notice service.Notice
		err    error
	)
	if req.Topic != "" {
		book, notice, err = h.audiobooks.CreateFromTopic(r.Context(), uid, req.Topic)
	} else {
		book, notice, err = h.audiobooks.Create(r.Context(), uid, req.Title, req.Text)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, AudiobookResponse{Audiobook: newAudiobookView(*book), Notice: notice})
}

func (h *AudiobookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := audiobookID(w, r)
	if !ok {
		return
	}
	if err := h.audiobooks.Delete(GetUserFromContext(r.Context()).UID(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AudiobookHandler) Play(w http.ResponseWriter, r *http.Request) {
	id, ok := audiobookID(w, r)
	if !ok {
		return
	}
	pb, err := h.audiobooks.Play(GetUserFromContext(r.Context()).UID(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pb)
}

func (h *AudiobookHandler) Stop(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PlaybackResponse{Stopped: h.audiobooks.Stop(GetUserFromContext(r.Context()).UID())})
}

func audiobookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid audiobook ID", "", nil)
		return 0, false
	}
	return id, true
}
