package models

import "time"

// Audiobook is a rendered text-to-speech item in a user's library
type Audiobook struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	AudioFile string    `json:"audioFile"`
	CreatedAt time.Time `json:"createdAt"`
}

// AudioURL is the public path of the rendered audio, or "" if none was produced
func (a *Audiobook) AudioURL() string {
	if a.AudioFile == "" {
		return ""
	}
	return "/static/audio/" + a.AudioFile
}
