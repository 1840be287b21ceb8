// ABOUTME: Write-side validation shared by every backend.
// ABOUTME: Rejects bad sessions, malformed shot logs, and duplicate shot types.
package storage

import (
	"fmt"

	"github.com/harperreed/hoops/internal/models"
)

// validateSession checks a session and the logs that will be attached to it.
// Each log must belong to the session, use a known shot type at most once,
// and carry non-negative counts.
func validateSession(s *models.TrainingSession, logs []models.ShotLog) error {
	if err := s.Validate(); err != nil {
		return err
	}
	seen := make(map[models.ShotType]bool, len(logs))
	for _, l := range logs {
		if l.SessionID != s.ID {
			return fmt.Errorf("shot log %s belongs to session %s, not %s", l.ID, l.SessionID, s.ID)
		}
		if !models.IsValidShotType(string(l.ShotType)) {
			return fmt.Errorf("unknown shot type: %s", l.ShotType)
		}
		if l.Made < 0 || l.Missed < 0 {
			return fmt.Errorf("%s: made and missed must not be negative", l.ShotType)
		}
		if seen[l.ShotType] {
			return fmt.Errorf("duplicate shot type in session: %s", l.ShotType)
		}
		seen[l.ShotType] = true
	}
	return nil
}

func validateOfficialGame(g *models.OfficialGame) error {
	if err := g.Validate(); err != nil {
		return err
	}
	g.Normalize()
	return nil
}
