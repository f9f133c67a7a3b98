package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/models"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
	"metaclassroom/internal/security"
	"metaclassroom/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnknownProvider    = errors.New("unknown sign-in provider")
)

// signupInput is checked with validator tags before an account is created.
type signupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"notblank"`
}

// AuthService handles accounts, sessions and the profile writes that go with
// signing in.
type AuthService struct {
	userRepo        *repository.UserRepository
	profiles        profile.Store
	email           *EmailService
	sessionDuration time.Duration
	onSignOut       func(uid string)
	now             func() time.Time
}

// NewAuthService creates a new auth service. email may be nil.
func NewAuthService(userRepo *repository.UserRepository, profiles profile.Store, email *EmailService, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		profiles:        profiles,
		email:           email,
		sessionDuration: sessionDuration,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// OnSignOut registers fn to run with the user id after a session ends.
func (s *AuthService) OnSignOut(fn func(uid string)) {
	s.onSignOut = fn
}

// CreateAccount registers an email/password account, writes its profile and
// signs it in.
func (s *AuthService) CreateAccount(ctx context.Context, email, password, name string) (*models.Session, *models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if err := validation.Struct(signupInput{Email: email, Password: password, Name: name}); err != nil {
		return nil, nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := s.userRepo.CreateUser(email, hash, name)
	if err != nil {
		return nil, nil, err
	}

	if err := s.profiles.Set(ctx, user.UID(), profile.New(name, email, s.now())); err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.email.SendWelcomeEmail(ctx, email, name); err != nil {
		log.Warn().Err(err).Str("user_id", user.UID()).Msg("welcome email failed")
	}

	session, err := s.startSession(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// SignIn authenticates with email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.HasPassword() || !security.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.profiles.Merge(ctx, user.UID(), profile.Update{LastLoginAt: &now}); err != nil {
		return nil, nil, fmt.Errorf("failed to update profile: %w", err)
	}

	session, err := s.startSession(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// SignInWithProvider finds or creates the account behind a provider identity.
// A first sign-in writes a fresh profile; later ones only touch lastLoginAt.
func (s *AuthService) SignInWithProvider(ctx context.Context, provider, subject, email, displayName string) (*models.Session, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	if err := validation.Email(email); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existing, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		switch {
		case existing != nil && existing.OAuthProvider != "" && existing.OAuthProvider != provider:
			return nil, nil, ErrEmailTaken
		case existing != nil:
			if err := s.userRepo.LinkOAuthProvider(existing.ID, provider, subject); err != nil {
				return nil, nil, err
			}
			user = existing
		default:
			name := strings.TrimSpace(displayName)
			if name == "" {
				name = "User"
			}
			if user, err = s.userRepo.CreateOAuthUser(email, name, provider, subject); err != nil {
				return nil, nil, err
			}
		}
	}

	p, err := s.profiles.Get(ctx, user.UID())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read profile: %w", err)
	}
	now := s.now()
	if p == nil {
		name := strings.TrimSpace(displayName)
		if name == "" {
			name = "User"
		}
		err = s.profiles.Set(ctx, user.UID(), profile.New(name, email, now))
	} else {
		err = s.profiles.Merge(ctx, user.UID(), profile.Update{LastLoginAt: &now})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to write profile: %w", err)
	}

	session, err := s.startSession(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (s *AuthService) startSession(user *models.User) (*models.Session, error) {
	session, err := s.userRepo.CreateSession(security.GenerateSessionID(), user.ID, s.now().Add(s.sessionDuration))
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CurrentIdentity resolves the user signed in with sessionID.
func (s *AuthService) CurrentIdentity(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// SignOut ends a session. Unknown sessions are not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	if session != nil && s.onSignOut != nil {
		s.onSignOut((&models.User{ID: session.UserID}).UID())
	}
	return nil
}

// Profile returns the user's profile document, or nil if none was written.
func (s *AuthService) Profile(ctx context.Context, user *models.User) (*profile.Profile, error) {
	return s.profiles.Get(ctx, user.UID())
}

// UpdateProfile changes the display name on both the account and the profile.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, name string) (*profile.Profile, error) {
	name = strings.TrimSpace(name)
	if err := validation.Name(name); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.profiles.Merge(ctx, user.UID(), profile.Update{Name: &name, UpdatedAt: &now}); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := s.userRepo.UpdateName(user.ID, name); err != nil {
		return nil, err
	}
	user.Name = name
	return s.profiles.Get(ctx, user.UID())
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() (int64, error) {
	n, err := s.userRepo.DeleteExpiredSessions()
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}

// RunSessionSweeper deletes expired sessions every interval until ctx ends.
func (s *AuthService) RunSessionSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.CleanupExpiredSessions()
			if err != nil {
				log.Error().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("removed", n).Msg("expired sessions removed")
			}
		}
	}
}
