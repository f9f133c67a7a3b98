package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/audio"
	"metaclassroom/internal/models"
	"metaclassroom/internal/repository"
)

var (
	ErrEmptyText         = errors.New("please enter some text")
	ErrAudiobookNotFound = errors.New("audiobook not found")
	ErrUnknownTopic      = errors.New("unknown topic")
)

const titleLength = 30

// Topic is a ready-made text offered for one-click audiobooks.
type Topic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var topics = []Topic{
	{
		ID:    "solar-system",
		Title: "Solar System",
		Text:  "Our solar system consists of the Sun and everything bound to it by gravity. The eight planets are Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, and Neptune. There are also dwarf planets like Pluto, numerous moons, and millions of asteroids, comets, and meteoroids. The solar system formed about 4.6 billion years ago from a giant cloud of gas and dust.",
	},
	{
		ID:    "newton-laws",
		Title: "Newton's Laws",
		Text:  "Newton's First Law states that an object at rest stays at rest, and an object in motion stays in motion unless acted upon by a force. The Second Law explains how force equals mass times acceleration. The Third Law tells us that for every action, there is an equal and opposite reaction. These laws form the foundation of classical mechanics.",
	},
	{
		ID:    "photosynthesis",
		Title: "Photosynthesis",
		Text:  "Photosynthesis is the process plants use to convert sunlight into energy. Using chlorophyll, plants take in carbon dioxide and water, and with the help of sunlight, produce glucose and oxygen. This amazing process provides the oxygen we breathe and forms the base of most food chains on Earth.",
	},
}

// Topics lists the predefined audiobook topics.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// Notice is a toast returned alongside a successful action.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Playback is what the client should be playing after Play.
type Playback struct {
	Playing  int64  `json:"playing"`
	AudioURL string `json:"audioUrl"`
	Replaced int64  `json:"replaced,omitempty"`
}

// AudiobookService renders text into a per-user audiobook library.
type AudiobookService struct {
	repo   *repository.AudiobookRepository
	tts    *audio.TTSService
	player *audio.Player
	now    func() time.Time
}

func NewAudiobookService(repo *repository.AudiobookRepository, tts *audio.TTSService, player *audio.Player) *AudiobookService {
	return &AudiobookService{
		repo:   repo,
		tts:    tts,
		player: player,
		now:    time.Now,
	}
}

// Create renders text and adds it to the user's library. A blank title is
// derived from the first words of the text.
func (s *AudiobookService) Create(ctx context.Context, userID, title, text string) (*models.Audiobook, Notice, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, Notice{}, ErrEmptyText
	}
	if err := s.tts.Available(); err != nil {
		return nil, Notice{}, err
	}
	if title = strings.TrimSpace(title); title == "" {
		title = titleFromText(text)
	}

	book := &models.Audiobook{
		UserID:    userID,
		Title:     title,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(book); err != nil {
		return nil, Notice{}, err
	}

	file, err := s.tts.GenerateAudioFileWithPrefix(ctx, text, "audiobook_"+strconv.FormatInt(book.ID, 10))
	if err != nil {
		if _, derr := s.repo.Delete(userID, book.ID); derr != nil {
			log.Error().Err(derr).Int64("audiobook_id", book.ID).Msg("failed to remove audiobook after render failure")
		}
		return nil, Notice{}, fmt.Errorf("failed to create audiobook: %w", err)
	}
	if err := s.repo.SetAudioFile(book.ID, file); err != nil {
		return nil, Notice{}, err
	}
	book.AudioFile = file

	return book, Notice{
		Title:       "Audiobook Ready! 🎧",
		Description: fmt.Sprintf("%q is ready to listen", book.Title),
	}, nil
}

// CreateFromTopic renders one of the predefined topics.
func (s *AudiobookService) CreateFromTopic(ctx context.Context, userID, topicID string) (*models.Audiobook, Notice, error) {
	for _, t := range topics {
		if t.ID == topicID {
			return s.Create(ctx, userID, t.Title, t.Text)
		}
	}
	return nil, Notice{}, fmt.Errorf("%w: %s", ErrUnknownTopic, topicID)
}

// Library returns the user's audiobooks, newest first.
func (s *AudiobookService) Library(userID string) ([]models.Audiobook, error) {
	books, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Audiobook{}
	}
	return books, nil
}

// Delete removes an item and its audio file.
func (s *AudiobookService) Delete(userID string, id int64) error {
	book, err := s.repo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if book == nil {
		return ErrAudiobookNotFound
	}
	if _, err := s.repo.Delete(userID, id); err != nil {
		return err
	}
	if err := s.tts.DeleteAudioFile(book.AudioFile); err != nil {
		log.Warn().Err(err).Str("file", book.AudioFile).Msg("failed to remove audio file")
	}
	s.player.Forget(userID, strconv.FormatInt(id, 10))
	return nil
}

// Play makes id the user's only active item.
func (s *AudiobookService) Play(userID string, id int64) (Playback, error) {
	book, err := s.repo.GetByID(userID, id)
	if err != nil {
		return Playback{}, err
	}
	if book == nil {
		return Playback{}, ErrAudiobookNotFound
	}

	pb := Playback{Playing: id, AudioURL: book.AudioURL()}
	if prev := s.player.Play(userID, strconv.FormatInt(id, 10)); prev != "" {
		pb.Replaced, _ = strconv.ParseInt(prev, 10, 64)
	}
	return pb, nil
}

// Stop ends playback and returns the item that was playing, or 0.
func (s *AudiobookService) Stop(userID string) int64 {
	id, _ := strconv.ParseInt(s.player.Stop(userID), 10, 64)
	return id
}

// Playing returns the user's active item, or 0.
func (s *AudiobookService) Playing(userID string) int64 {
	id, _ := strconv.ParseInt(s.player.Playing(userID), 10, 64)
	return id
}

func titleFromText(text string) string {
	r := []rune(text)
	if len(r) <= titleLength {
		return text
	}
	return string(r[:titleLength]) + "..."
}
