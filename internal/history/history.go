// Package history maintains the per-session list of played rounds.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/vytor/emojiabc/internal/models"
)

// Cap is the maximum number of records a session keeps. Oldest records are
// evicted first.
const Cap = 99

// Policy decides what happens to older records when a letter comes up again.
type Policy int

const (
	// PolicyAppend keeps one record per round.
	PolicyAppend Policy = iota
	// PolicyDedupe keeps at most one record per letter, the newest.
	PolicyDedupe
)

func (p Policy) String() string {
	switch p {
	case PolicyAppend:
		return "append"
	case PolicyDedupe:
		return "dedupe"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts "append" or "dedupe" in any case.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "append":
		return PolicyAppend, nil
	case "dedupe":
		return PolicyDedupe, nil
	default:
		return PolicyAppend, fmt.Errorf("unknown history policy %q", s)
	}
}

// Store mutates the history of exactly one session in place.
type Store struct {
	state  *models.SessionState
	policy Policy
	now    func() time.Time
}

type Option func(*Store)

func WithPolicy(p Policy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(state *models.SessionState, opts ...Option) *Store {
	s := &Store{
		state:  state,
		policy: PolicyAppend,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRound records a freshly presented letter.
func (s *Store) StartRound(letter, emoji, emojiName string) {
	letter = normalize(letter)
	if s.policy == PolicyDedupe {
		s.remove(letter)
	}
	s.append(models.HistoryRecord{
		Letter:    letter,
		Emoji:     emoji,
		EmojiName: emojiName,
		Timestamp: s.now().Unix(),
	})
}

// RecordTimeTaken fills in the newest unfinished record for letter. It does
// nothing when every record for letter already has a time.
func (s *Store) RecordTimeTaken(letter string, timeTaken float64) {
	letter = normalize(letter)
	h := s.state.History
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Letter == letter && h[i].TimeTaken == nil {
			t := timeTaken
			h[i].TimeTaken = &t
			return
		}
	}
}

// RecordError bumps the error count of the newest record for letter, or
// appends a record carrying a single error when the letter has none yet.
func (s *Store) RecordError(letter string) {
	letter = normalize(letter)
	h := s.state.History
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Letter == letter {
			h[i].Error++
			return
		}
	}
	s.append(models.HistoryRecord{
		Letter:    letter,
		Error:     1,
		Timestamp: s.now().Unix(),
	})
}

// Upsert handles a full record update sent by the client. Under PolicyDedupe
// the letter's record is replaced, keeping its error count and any emoji the
// update leaves blank. Under PolicyAppend it only records the time taken.
func (s *Store) Upsert(letter, emoji, emojiName string, timeTaken *float64) {
	letter = normalize(letter)
	if s.policy != PolicyDedupe {
		if timeTaken != nil {
			s.RecordTimeTaken(letter, *timeTaken)
		}
		return
	}

	rec := models.HistoryRecord{
		Letter:    letter,
		Emoji:     emoji,
		EmojiName: emojiName,
		Timestamp: s.now().Unix(),
	}
	if prev, ok := s.latest(letter); ok {
		rec.Error = prev.Error
		if rec.Emoji == "" {
			rec.Emoji = prev.Emoji
		}
		if rec.EmojiName == "" {
			rec.EmojiName = prev.EmojiName
		}
	}
	if timeTaken != nil {
		t := *timeTaken
		rec.TimeTaken = &t
	}
	s.remove(letter)
	s.append(rec)
}

func (s *Store) Clear() {
	s.state.History = []models.HistoryRecord{}
}

// Read returns the history newest first. With excludeCurrent set, records for
// the letter currently in play are left out.
func (s *Store) Read(excludeCurrent bool) []models.HistoryRecord {
	current := ""
	if excludeCurrent {
		current = normalize(s.state.CurrentLetter)
	}

	h := s.state.History
	out := make([]models.HistoryRecord, 0, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		if current != "" && h[i].Letter == current {
			continue
		}
		out = append(out, h[i])
	}
	return out
}

func (s *Store) Len() int {
	return len(s.state.History)
}

func (s *Store) append(rec models.HistoryRecord) {
	h := append(s.state.History, rec)
	if n := len(h); n > Cap {
		h = append([]models.HistoryRecord(nil), h[n-Cap:]...)
	}
	s.state.History = h
}

func (s *Store) remove(letter string) {
	kept := s.state.History[:0]
	for _, rec := range s.state.History {
		if rec.Letter != letter {
			kept = append(kept, rec)
		}
	}
	s.state.History = kept
}

func (s *Store) latest(letter string) (models.HistoryRecord, bool) {
	h := s.state.History
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Letter == letter {
			return h[i], true
		}
	}
	return models.HistoryRecord{}, false
}

func normalize(letter string) string {
	return strings.ToUpper(strings.TrimSpace(letter))
}
