// ABOUTME: ShotType enum and ShotLog model for shooting practice.
// ABOUTME: Five canonical shot types; one log per type per session.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShotType identifies a category of shot.
type ShotType string

const (
	ShotFreeThrow    ShotType = "free_throw"
	ShotThreePointer ShotType = "three_pointer"
	ShotMidRange     ShotType = "mid_range"
	ShotLayup        ShotType = "layup"
	ShotPost         ShotType = "post"
)

// AllShotTypes lists every shot type in canonical order.
// Ties in rankings resolve to the earlier entry.
var AllShotTypes = []ShotType{
	ShotFreeThrow, ShotThreePointer, ShotMidRange, ShotLayup, ShotPost,
}

// ShotTypeLabels maps shot types to display names.
var ShotTypeLabels = map[ShotType]string{
	ShotFreeThrow:    "Free Throw",
	ShotThreePointer: "3-Pointer",
	ShotMidRange:     "Mid-Range",
	ShotLayup:        "Layup",
	ShotPost:         "Post",
}

// IsValidShotType checks if a string is a valid shot type.
func IsValidShotType(s string) bool {
	for _, st := range AllShotTypes {
		if string(st) == s {
			return true
		}
	}
	return false
}

// ParseShotType converts a string to a ShotType.
func ParseShotType(s string) (ShotType, error) {
	if !IsValidShotType(s) {
		return "", fmt.Errorf("unknown shot type: %s", s)
	}
	return ShotType(s), nil
}

// Label returns the display name.
func (st ShotType) Label() string {
	if l, ok := ShotTypeLabels[st]; ok {
		return l
	}
	return string(st)
}

// ShotLog is the made/missed count for one shot type within a session.
type ShotLog struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	ShotType  ShotType  `json:"shot_type"`
	Made      int       `json:"made"`
	Missed    int       `json:"missed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewShotLog creates a ShotLog attached to a session.
func NewShotLog(sessionID uuid.UUID, shotType ShotType, made, missed int) *ShotLog {
	return &ShotLog{
		ID:        uuid.New(),
		SessionID: sessionID,
		ShotType:  shotType,
		Made:      made,
		Missed:    missed,
		CreatedAt: time.Now(),
	}
}

// Attempts returns made + missed.
func (l ShotLog) Attempts() int {
	return l.Made + l.Missed
}

// IsEmpty reports whether no shots were taken.
func (l ShotLog) IsEmpty() bool {
	return l.Attempts() == 0
}
