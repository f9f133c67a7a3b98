package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"metaclassroom/internal/classroom"
	"metaclassroom/internal/models"
	"metaclassroom/internal/service"
)

// ClassroomHandler serves the dashboard, settings, attendance, schedule and
// leaderboard pages.
type ClassroomHandler struct {
	classroom   *service.ClassroomService
	authService *service.AuthService
	now         func() time.Time
}

func NewClassroomHandler(classroomService *service.ClassroomService, authService *service.AuthService) *ClassroomHandler {
	return &ClassroomHandler{
		classroom:   classroomService,
		authService: authService,
		now:         time.Now,
	}
}

func (h *ClassroomHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.classroom.Dashboard(r.Context(), GetUserFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *ClassroomHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.authService.Profile(r.Context(), GetUserFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// UpdateProfile saves the display name from the settings page.
func (h *ClassroomHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.authService.UpdateProfile(r.Context(), GetUserFromContext(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ClassroomHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	h.respondSheet(w, r, nil)
}

func (h *ClassroomHandler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	sheet := h.classroom.Sheet(GetUserFromContext(r.Context()).UID())
	if _, err := sheet.Toggle(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	h.respondSheet(w, r, nil)
}

func (h *ClassroomHandler) MarkAll(w http.ResponseWriter, r *http.Request) {
	var req MarkAllRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	notice := h.classroom.Sheet(GetUserFromContext(r.Context()).UID()).MarkAll(req.Present)
	h.respondSheet(w, r, &notice)
}

// SaveAttendance stores the sheet as a dated record.
func (h *ClassroomHandler) SaveAttendance(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	rec, notice, err := h.classroom.SaveAttendance(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	sheet := h.classroom.Sheet(user.UID())
	respondJSON(w, http.StatusCreated, AttendanceResponse{
		Students: sheet.Entries(),
		Summary:  sheet.Summary(),
		Notice:   &notice,
		Record:   rec,
	})
}

func (h *ClassroomHandler) AttendanceHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.classroom.AttendanceHistory(GetUserFromContext(r.Context()).UID())
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	respondJSON(w, http.StatusOK, AttendanceHistoryResponse{Records: records})
}

func (h *ClassroomHandler) respondSheet(w http.ResponseWriter, r *http.Request, notice *classroom.Notice) {
	sheet := h.classroom.Sheet(GetUserFromContext(r.Context()).UID())
	respondJSON(w, http.StatusOK, AttendanceResponse{
		Students: sheet.Entries(),
		Summary:  sheet.Summary(),
		Notice:   notice,
	})
}

// Schedule shows the week containing ?week=YYYY-MM-DD, or the current week.
func (h *ClassroomHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	anchor := h.now()
	if week := r.URL.Query().Get("week"); week != "" {
		t, err := time.ParseInLocation("2006-01-02", week, anchor.Location())
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "week must be a date in YYYY-MM-DD form", "", nil)
			return
		}
		anchor = t
	}
	respondJSON(w, http.StatusOK, h.classroom.Schedule(anchor))
}

func (h *ClassroomHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := h.classroom.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lb)
}
