// ABOUTME: TrainingSession model, Mood enum, and the SessionWithShots join.
// ABOUTME: Sessions are immutable once stored; shot logs hang off them.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mood is the self-reported feeling after a session.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOK    Mood = "ok"
	MoodTired Mood = "tired"
)

// AllMoods lists moods from best to worst.
var AllMoods = []Mood{MoodGreat, MoodGood, MoodOK, MoodTired}

// MoodLabels maps moods to display names.
var MoodLabels = map[Mood]string{
	MoodGreat: "Great",
	MoodGood:  "Good",
	MoodOK:    "OK",
	MoodTired: "Tired",
}

// MoodEmojis maps moods to a single emoji.
var MoodEmojis = map[Mood]string{
	MoodGreat: "🔥",
	MoodGood:  "💪",
	MoodOK:    "👍",
	MoodTired: "😴",
}

// IsValidMood checks if a string is a valid mood.
func IsValidMood(s string) bool {
	for _, m := range AllMoods {
		if string(m) == s {
			return true
		}
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	DefaultDifficulty = 3
	DefaultDuration   = 60
)

// TrainingSession is one shooting-practice session on a calendar day.
type TrainingSession struct {
	ID              uuid.UUID `json:"id"`
	Date            Date      `json:"date"`
	Notes           *string   `json:"notes,omitempty"`
	Difficulty      int       `json:"difficulty"`
	DurationMinutes int       `json:"duration_minutes"`
	Mood            Mood      `json:"mood"`
	VideoURL        *string   `json:"video_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewTrainingSession creates a session on the given day with default
// difficulty, duration, and mood.
func NewTrainingSession(date Date) *TrainingSession {
	return &TrainingSession{
		ID:              uuid.New(),
		Date:            date,
		Difficulty:      DefaultDifficulty,
		DurationMinutes: DefaultDuration,
		Mood:            MoodGood,
		CreatedAt:       time.Now(),
	}
}

// WithDifficulty sets the 1-5 difficulty rating.
func (s *TrainingSession) WithDifficulty(d int) *TrainingSession {
	s.Difficulty = d
	return s
}

// WithDuration sets the duration in minutes.
func (s *TrainingSession) WithDuration(minutes int) *TrainingSession {
	s.DurationMinutes = minutes
	return s
}

// WithMood sets the mood.
func (s *TrainingSession) WithMood(m Mood) *TrainingSession {
	s.Mood = m
	return s
}

// WithNotes sets notes on the session.
func (s *TrainingSession) WithNotes(notes string) *TrainingSession {
	s.Notes = &notes
	return s
}

// WithVideoURL attaches a video link.
func (s *TrainingSession) WithVideoURL(url string) *TrainingSession {
	s.VideoURL = &url
	return s
}

// Validate checks the enum and range fields.
func (s *TrainingSession) Validate() error {
	if s.Date.IsZero() {
		return fmt.Errorf("session date is required")
	}
	if s.Difficulty < MinDifficulty || s.Difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty must be between %d and %d, got %d", MinDifficulty, MaxDifficulty, s.Difficulty)
	}
	if s.DurationMinutes < 0 {
		return fmt.Errorf("duration must not be negative, got %d", s.DurationMinutes)
	}
	if !IsValidMood(string(s.Mood)) {
		return fmt.Errorf("unknown mood: %s", s.Mood)
	}
	return nil
}

// SessionWithShots is a session joined with its shot logs.
type SessionWithShots struct {
	TrainingSession `yaml:",inline"`
	ShotLogs        []ShotLog `json:"shot_logs"`
}

// LogFor returns the log for a shot type, if present.
func (s SessionWithShots) LogFor(st ShotType) (ShotLog, bool) {
	for _, l := range s.ShotLogs {
		if l.ShotType == st {
			return l, true
		}
	}
	return ShotLog{}, false
}
