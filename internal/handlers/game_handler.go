package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"metaclassroom/internal/models"
	"metaclassroom/internal/service"
)

// GameHandler exposes the mind games controller.
type GameHandler struct {
	games *service.GameService
}

func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

func (h *GameHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CatalogResponse{Games: h.games.Catalog()})
}

// Session returns the current session, if any, with the player's recent results.
func (h *GameHandler) Session(w http.ResponseWriter, r *http.Request) {
	uid := GetUserFromContext(r.Context()).UID()
	results, err := h.games.Results(uid, resultsLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.GameResult{}
	}
	respondJSON(w, http.StatusOK, GameSessionResponse{
		Session: h.games.Current(uid),
		Results: results,
	})
}

func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	out, err := h.games.Start(GetUserFromContext(r.Context()).UID(), chi.URLParam(r, "game"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

// Act applies one player action. Actions without arguments accept an empty body.
func (h *GameHandler) Act(w http.ResponseWriter, r *http.Request) {
	var a service.Action
	if err := decodeAction(r, &a); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	out, err := h.games.Perform(GetUserFromContext(r.Context()).UID(), chi.URLParam(r, "action"), a)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// Quit abandons the session and returns to game selection.
func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	h.games.Quit(GetUserFromContext(r.Context()).UID())
	w.WriteHeader(http.StatusNoContent)
}

func decodeAction(r *http.Request, a *service.Action) error {
	err := jsonDecoder(r).Decode(a)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
