package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/classroom"
	"metaclassroom/internal/models"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
)

const dashboardResults = 5

// ClassroomService backs the attendance, schedule, leaderboard and
// dashboard pages.
type ClassroomService struct {
	sheets     *classroom.Sheets
	attendance *repository.AttendanceRepository
	results    *repository.GameResultRepository
	users      *repository.UserRepository
	profiles   profile.Store
	email      *EmailService
	now        func() time.Time
}

func NewClassroomService(
	attendance *repository.AttendanceRepository,
	results *repository.GameResultRepository,
	users *repository.UserRepository,
	profiles profile.Store,
	email *EmailService,
) *ClassroomService {
	return &ClassroomService{
		sheets:     classroom.NewSheets(),
		attendance: attendance,
		results:    results,
		users:      users,
		profiles:   profiles,
		email:      email,
		now:        time.Now,
	}
}

// Sheet returns today's attendance sheet for the user.
func (s *ClassroomService) Sheet(userID string) *classroom.Sheet {
	return s.sheets.For(userID)
}

// SaveAttendance stores a snapshot of the user's sheet and mails the summary
// when email is configured. A failed email does not undo the save.
func (s *ClassroomService) SaveAttendance(ctx context.Context, user *models.User) (*models.AttendanceRecord, classroom.Notice, error) {
	sheet := s.sheets.For(user.UID())
	sum := sheet.Summary()
	now := s.now().UTC()

	rec := &models.AttendanceRecord{
		UserID:      user.UID(),
		ClassDate:   now.Format("2006-01-02"),
		Total:       sum.Total,
		Present:     sum.Present,
		Rate:        sum.RateExact,
		AbsentNames: sheet.AbsentNames(),
		CreatedAt:   now,
	}
	if err := s.attendance.Create(rec); err != nil {
		return nil, classroom.Notice{}, err
	}

	if err := s.email.SendAttendanceSummary(ctx, user.Email, user.Name, rec); err != nil {
		log.Warn().Err(err).Str("user_id", user.UID()).Msg("attendance email failed")
	}
	return rec, sum.SavedNotice(), nil
}

// AttendanceHistory lists the user's saved sheets, newest first.
func (s *ClassroomService) AttendanceHistory(userID string) ([]models.AttendanceRecord, error) {
	return s.attendance.ListByUser(userID)
}

// ScheduleView is one week of the timetable.
type ScheduleView struct {
	Range    classroom.WeekRange `json:"range"`
	Days     []classroom.Day     `json:"days"`
	Previous string              `json:"previous"`
	Next     string              `json:"next"`
}

// Schedule lays out the week containing anchor.
func (s *ClassroomService) Schedule(anchor time.Time) ScheduleView {
	return ScheduleView{
		Range:    classroom.Range(anchor),
		Days:     classroom.Week(anchor, s.now().In(anchor.Location())),
		Previous: classroom.Navigate(anchor, -1).Format("2006-01-02"),
		Next:     classroom.Navigate(anchor, 1).Format("2006-01-02"),
	}
}

// Leaderboard ranks the seeded class together with everyone who has
// completed a game.
func (s *ClassroomService) Leaderboard(ctx context.Context) (classroom.Leaderboard, error) {
	totals, err := s.results.Totals()
	if err != nil {
		return classroom.Leaderboard{}, err
	}

	live := make([]classroom.LivePlayer, 0, len(totals))
	for _, t := range totals {
		p, err := s.profiles.Get(ctx, t.UserID)
		if err != nil {
			return classroom.Leaderboard{}, fmt.Errorf("failed to read profile %s: %w", t.UserID, err)
		}

		player := classroom.LivePlayer{
			UserID:      t.UserID,
			Name:        s.playerName(t.UserID, p),
			Score:       t.TotalScore,
			GamesPlayed: t.GamesPlayed,
			WinRate:     t.WinRate(),
			TotalXP:     t.TotalScore,
			Level:       profile.LevelForXP(t.TotalScore),
		}
		if p != nil {
			player.TotalXP, player.Level = p.XP, p.Level
		}
		live = append(live, player)
	}
	return classroom.BuildLeaderboard(live), nil
}

func (s *ClassroomService) playerName(uid string, p *profile.Profile) string {
	if p != nil && p.Name != "" {
		return p.Name
	}
	if id, err := strconv.ParseInt(uid, 10, 64); err == nil {
		if u, err := s.users.GetUserByID(id); err == nil && u != nil {
			return u.Name
		}
	}
	return "Player " + uid
}

// Dashboard builds the user's home page.
func (s *ClassroomService) Dashboard(ctx context.Context, user *models.User) (classroom.Dashboard, error) {
	p, err := s.profiles.Get(ctx, user.UID())
	if err != nil {
		return classroom.Dashboard{}, fmt.Errorf("failed to read profile: %w", err)
	}
	results, err := s.results.ListByUser(user.UID(), dashboardResults)
	if err != nil {
		return classroom.Dashboard{}, err
	}
	return classroom.BuildDashboard(p, user.Email, results), nil
}
