// Package audio renders text to MP3 files and tracks what each user is
// listening to.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	// MaxChunk is the longest text the TTS endpoint accepts in one request.
	MaxChunk = 200
	// Rate is the speaking speed. Pitch stays at the voice default of 1.
	Rate = 0.8

	ttsRequestTimeout = 10 * time.Second
	defaultEndpoint   = "https://translate.google.com/translate_tts"
)

// ErrSpeechUnavailable means synthesis is switched off or the audio
// directory cannot be written.
var ErrSpeechUnavailable = errors.New("speech synthesis not supported in this environment")

// TTSService provides text-to-speech functionality
type TTSService struct {
	audioDir string
	enabled  bool
	endpoint string
	client   *http.Client

	once        sync.Once
	unavailable error
}

type Option func(*TTSService)

// WithEndpoint points the service at a different TTS endpoint.
func WithEndpoint(u string) Option {
	return func(s *TTSService) { s.endpoint = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *TTSService) { s.client = c }
}

// NewTTSService creates a new TTS service
func NewTTSService(audioDir string, enabled bool, opts ...Option) *TTSService {
	s := &TTSService{
		audioDir: audioDir,
		enabled:  enabled,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether synthesis can run. The first failure is logged;
// the result is fixed for the life of the process.
func (s *TTSService) Available() error {
	s.once.Do(func() {
		s.unavailable = s.probe()
		if s.unavailable != nil {
			log.Warn().Err(s.unavailable).Str("audio_dir", s.audioDir).Msg("audiobooks disabled")
		}
	})
	return s.unavailable
}

func (s *TTSService) probe() error {
	if !s.enabled {
		return fmt.Errorf("%w: disabled by configuration", ErrSpeechUnavailable)
	}
	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrSpeechUnavailable, err)
	}
	f, err := os.CreateTemp(s.audioDir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSpeechUnavailable, err)
	}
	f.Close()
	os.Remove(f.Name())
	return nil
}

// GenerateAudioFileWithPrefix converts text to speech and saves it as
// <prefix>.mp3, returning the filename (not the full path).
func (s *TTSService) GenerateAudioFileWithPrefix(ctx context.Context, text, prefix string) (string, error) {
	if err := s.Available(); err != nil {
		return "", err
	}

	sanitized := strings.ToLower(strings.TrimSpace(prefix))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")
	filename := sanitized + ".mp3"
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	chunks := ChunkText(text, MaxChunk)
	if len(chunks) == 0 {
		return "", errors.New("no text to synthesize")
	}

	tmp, err := os.CreateTemp(s.audioDir, sanitized+"-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for i, chunk := range chunks {
		if err := s.fetchChunk(ctx, chunk, i, len(chunks), tmp); err != nil {
			tmp.Close()
			return "", fmt.Errorf("failed to generate audio: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return filename, nil
}

// fetchChunk uses Google Translate's text-to-speech endpoint and appends the
// MP3 frames to w.
func (s *TTSService) fetchChunk(ctx context.Context, text string, idx, total int, w io.Writer) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("ttsspeed", strconv.FormatFloat(Rate, 'f', -1, 64))
	params.Set("idx", strconv.Itoa(idx))
	params.Set("total", strconv.Itoa(total))
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

// DeleteAudioFile removes an audio file
func (s *TTSService) DeleteAudioFile(filename string) error {
	if filename == "" {
		return nil
	}
	path := filepath.Join(s.audioDir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ChunkText splits text into pieces of at most limit characters, breaking
// between sentences where possible, then between words, and only inside a
// word that is longer than limit on its own.
func ChunkText(text string, limit int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	add := func(piece string) {
		n := utf8.RuneCountInString(piece)
		if curLen > 0 && curLen+1+n > limit {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(piece)
		curLen += n
	}

	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(sentence) <= limit {
			add(sentence)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			r := []rune(word)
			for len(r) > limit {
				add(string(r[:limit]))
				r = r[limit:]
			}
			add(string(r))
		}
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 == len(text) || text[i+1] == ' ' {
				out = append(out, strings.TrimSpace(text[start:i+1]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
