package videogen

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultDuration = 60
	DefaultStyle    = "educational"
)

// ErrMissingFields is returned when topic or key points are blank.
var ErrMissingFields = errors.New("please fill in all required fields")

// ErrInvalidForm covers a bad duration or style.
var ErrInvalidForm = errors.New("invalid video form")

// Styles lists the presentation styles the service accepts.
var Styles = []string{"educational", "animated", "documentary", "presentation"}

// Form is the raw generator form as submitted by the browser.
type Form struct {
	Topic     string `json:"topic"`
	Duration  string `json:"duration"`
	KeyPoints string `json:"keyPoints"`
	Style     string `json:"style"`
}

// ParseForm validates the form and builds the service request. Key points are
// one per line.
func ParseForm(f Form) (Request, error) {
	if strings.TrimSpace(f.Topic) == "" || strings.TrimSpace(f.KeyPoints) == "" {
		return Request{}, ErrMissingFields
	}

	duration := DefaultDuration
	if d := strings.TrimSpace(f.Duration); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n <= 0 {
			return Request{}, errors.Join(ErrInvalidForm, errors.New("duration must be a positive number of seconds"))
		}
		duration = n
	}

	style := strings.ToLower(strings.TrimSpace(f.Style))
	if style == "" {
		style = DefaultStyle
	}
	if !validStyle(style) {
		return Request{}, errors.Join(ErrInvalidForm, errors.New("unknown style: "+style))
	}

	lines := strings.Split(f.KeyPoints, "\n")
	points := make([]string, 0, len(lines))
	for _, l := range lines {
		points = append(points, strings.TrimSpace(l))
	}

	return Request{
		Topic:     f.Topic,
		Duration:  duration,
		KeyPoints: points,
		Style:     style,
	}, nil
}

func validStyle(s string) bool {
	for _, v := range Styles {
		if v == s {
			return true
		}
	}
	return false
}
