package handlers

import (
	"metaclassroom/internal/classroom"
	"metaclassroom/internal/mindgames"
	"metaclassroom/internal/models"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/service"
	"metaclassroom/internal/videogen"
)

type OAuthProviderView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type UserView struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
}

func newUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, Provider: u.OAuthProvider}
}

// IdentityResponse is returned by sign-up, login and /me.
type IdentityResponse struct {
	User      UserView         `json:"user"`
	Profile   *profile.Profile `json:"profile"`
	CSRFToken string           `json:"csrfToken"`
}

type ProvidersResponse struct {
	Providers []OAuthProviderView `json:"providers"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Name string `json:"name"`
}

type AttendanceResponse struct {
	Students []classroom.Entry       `json:"students"`
	Summary  classroom.Summary       `json:"summary"`
	Notice   *classroom.Notice       `json:"notice,omitempty"`
	Record   *models.AttendanceRecord `json:"record,omitempty"`
}

type MarkAllRequest struct {
	Present bool `json:"present"`
}

type AttendanceHistoryResponse struct {
	Records []models.AttendanceRecord `json:"records"`
}

type CatalogResponse struct {
	Games []mindgames.Info `json:"games"`
}

type GameSessionResponse struct {
	Session *mindgames.Session  `json:"session"`
	Results []models.GameResult `json:"results"`
}

type AudiobookView struct {
	models.Audiobook
	AudioURL string `json:"audioUrl"`
}

func newAudiobookView(b models.Audiobook) AudiobookView {
	return AudiobookView{Audiobook: b, AudioURL: b.AudioURL()}
}

type AudiobookRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

type TopicsResponse struct {
	Topics []service.Topic `json:"topics"`
}

type PlaybackResponse struct {
	Stopped int64 `json:"stopped"`
}

type AudiobookResponse struct {
	Audiobook AudiobookView  `json:"audiobook"`
	Notice    service.Notice `json:"notice"`
}

type LibraryResponse struct {
	Audiobooks []AudiobookView `json:"audiobooks"`
	Playing    int64           `json:"playing,omitempty"`
}

type VideoView struct {
	videogen.Video
	URL string `json:"url"`
}

type VideoCreatedResponse struct {
	URL string `json:"url"`
}

type VideoListResponse struct {
	Videos []VideoView `json:"videos"`
}
