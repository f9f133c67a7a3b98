package classroom

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrUnknownStudent = errors.New("unknown student")

// Entry is one row of the attendance sheet.
type Entry struct {
	Student
	Present bool `json:"present"`
}

// Summary is the headline of a sheet. Rate is rounded to a whole percent
// for display; RateExact keeps one decimal place.
type Summary struct {
	Total     int    `json:"total"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Rate      int64  `json:"rate"`
	RateExact string `json:"rateExact"`
}

// Notice mirrors the toast the attendance page shows after bulk actions.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Sheet is today's attendance for the class. Everyone starts absent.
type Sheet struct {
	mu      sync.Mutex
	entries []Entry
}

func NewSheet() *Sheet {
	s := &Sheet{}
	for _, st := range roster {
		s.entries = append(s.entries, Entry{Student: st})
	}
	return s
}

// Toggle flips one student's presence.
func (s *Sheet) Toggle(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Present = !s.entries[i].Present
			return s.entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownStudent, id)
}

// MarkAll sets every student present or absent.
func (s *Sheet) MarkAll(present bool) Notice {
	s.mu.Lock()
	for i := range s.entries {
		s.entries[i].Present = present
	}
	s.mu.Unlock()

	if present {
		return Notice{Title: "All Marked Present", Description: "All students marked as present"}
	}
	return Notice{Title: "All Marked Absent", Description: "All students marked as absent"}
}

// Entries returns a copy of the sheet rows.
func (s *Sheet) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// AbsentNames lists the students not marked present.
func (s *Sheet) AbsentNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	for _, e := range s.entries {
		if !e.Present {
			names = append(names, e.Name)
		}
	}
	return names
}

func (s *Sheet) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	present := 0
	for _, e := range s.entries {
		if e.Present {
			present++
		}
	}
	return Summarize(present, len(s.entries))
}

// Summarize computes the attendance rate with half-away-from-zero rounding.
func Summarize(present, total int) Summary {
	sum := Summary{Total: total, Present: present, Absent: total - present, RateExact: "0"}
	if total == 0 {
		return sum
	}
	rate := decimal.NewFromInt(int64(present)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
	sum.Rate = rate.Round(0).IntPart()
	sum.RateExact = rate.Round(1).String()
	return sum
}

// SavedNotice is the confirmation shown after a sheet is saved.
func (s Summary) SavedNotice() Notice {
	return Notice{
		Title:       "Attendance Saved!",
		Description: fmt.Sprintf("Present: %d | Absent: %d", s.Present, s.Absent),
	}
}

// Sheets keeps one attendance sheet per teacher account.
type Sheets struct {
	mu     sync.Mutex
	sheets map[string]*Sheet
}

func NewSheets() *Sheets {
	return &Sheets{sheets: make(map[string]*Sheet)}
}

// For returns the user's sheet, creating it on first use.
func (s *Sheets) For(userID string) *Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.sheets[userID]
	if !ok {
		sh = NewSheet()
		s.sheets[userID] = sh
	}
	return sh
}
