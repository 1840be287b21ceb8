// ABOUTME: Application service tying the record store to stats and drill plans.
// ABOUTME: Inserts validated records and loads snapshots with an injected clock.
package tracker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service is the entry point used by the CLI and MCP server.
type Service struct {
	repo   storage.Repository
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service over repo.
func New(repo storage.Repository, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repo exposes the underlying store for export and migration.
func (s *Service) Repo() storage.Repository {
	return s.repo
}

// Today is the local calendar day according to the service clock.
func (s *Service) Today() models.Date {
	return models.Today(s.now())
}

// Snapshot is sessions and games loaded together.
type Snapshot struct {
	Sessions []models.SessionWithShots `json:"sessions"`
	Pickup   []models.PickupGame       `json:"pickup_games"`
	Official []models.OfficialGame     `json:"official_games"`
}

// Snapshot loads sessions matching q plus every game, concurrently.
func (s *Service) Snapshot(ctx context.Context, q storage.SessionQuery) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sessions, err := storage.LoadSessionsWithShots(gctx, s.repo, q)
		if err != nil {
			return err
		}
		snap.Sessions = sessions
		return nil
	})
	g.Go(func() error {
		games, err := s.repo.ListPickupGames(gctx, storage.GameQuery{})
		if err != nil {
			return fmt.Errorf("list pickup games: %w", err)
		}
		snap.Pickup = derefAll(games)
		return nil
	})
	g.Go(func() error {
		games, err := s.repo.ListOfficialGames(gctx, storage.GameQuery{Order: storage.Asc})
		if err != nil {
			return fmt.Errorf("list official games: %w", err)
		}
		snap.Official = derefAll(games)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ShotCount is the made/missed entry for one shot type.
type ShotCount struct {
	ShotType models.ShotType `json:"shot_type"`
	Made     int             `json:"made"`
	Missed   int             `json:"missed"`
}

// LogSession stores a session with a shot log for every count that has at
// least one attempt. Empty counts are dropped.
func (s *Service) LogSession(ctx context.Context, session *models.TrainingSession, counts []ShotCount) (*models.SessionWithShots, error) {
	logs := make([]models.ShotLog, 0, len(counts))
	for _, c := range counts {
		if c.Made < 0 || c.Missed < 0 {
			return nil, fmt.Errorf("%s: made and missed must not be negative", c.ShotType)
		}
		if c.Made+c.Missed == 0 {
			continue
		}
		logs = append(logs, *models.NewShotLog(session.ID, c.ShotType, c.Made, c.Missed))
	}

	if err := s.repo.CreateSession(ctx, session, logs); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("logged session",
		zap.String("id", session.ID.String()),
		zap.Stringer("date", session.Date),
		zap.Int("shot_logs", len(logs)))

	joined := storage.JoinShots([]*models.TrainingSession{session}, logPtrs(logs))
	return &joined[0], nil
}

// GetSession looks a session up by full ID or unique prefix.
func (s *Service) GetSession(ctx context.Context, idOrPrefix string) (*models.SessionWithShots, error) {
	return s.repo.GetSession(ctx, idOrPrefix)
}

// ListSessions returns sessions with their shot logs.
func (s *Service) ListSessions(ctx context.Context, q storage.SessionQuery) ([]models.SessionWithShots, error) {
	return storage.LoadSessionsWithShots(ctx, s.repo, q)
}

// LogPickupGame stores a pickup game.
func (s *Service) LogPickupGame(ctx context.Context, g *models.PickupGame) error {
	if err := s.repo.CreatePickupGame(ctx, g); err != nil {
		return fmt.Errorf("create pickup game: %w", err)
	}
	s.logger.Info("logged pickup game", zap.String("id", g.ID.String()), zap.String("result", string(g.Result)))
	return nil
}

// LogOfficialGame stores an official game. Stats and scores are cleared
// unless the game is completed.
func (s *Service) LogOfficialGame(ctx context.Context, g *models.OfficialGame) error {
	if err := s.repo.CreateOfficialGame(ctx, g); err != nil {
		return fmt.Errorf("create official game: %w", err)
	}
	s.logger.Info("logged official game",
		zap.String("id", g.ID.String()),
		zap.String("opponent", g.Opponent),
		zap.String("status", string(g.Status)))
	return nil
}

// Games is the games screen: pickup games newest first, official games
// split into upcoming and past.
type Games struct {
	Pickup   []models.PickupGame   `json:"pickup_games"`
	Upcoming []models.OfficialGame `json:"upcoming"`
	Past     []models.OfficialGame `json:"past"`
}

// ListGames loads every game.
func (s *Service) ListGames(ctx context.Context) (*Games, error) {
	pickup, err := s.repo.ListPickupGames(ctx, storage.GameQuery{})
	if err != nil {
		return nil, fmt.Errorf("list pickup games: %w", err)
	}
	official, err := s.repo.ListOfficialGames(ctx, storage.GameQuery{})
	if err != nil {
		return nil, fmt.Errorf("list official games: %w", err)
	}

	games := &Games{Pickup: derefAll(pickup)}
	games.Upcoming, games.Past = splitByStatus(derefAll(official))
	return games, nil
}

// ImportResult counts what a schedule import did.
type ImportResult struct {
	Imported []models.OfficialGame `json:"imported"`
	Skipped  int                   `json:"skipped"`
}

// ImportSchedule reads an iCalendar feed and stores each game not already
// present. A game is a duplicate when its date and opponent match an
// existing official game.
func (s *Service) ImportSchedule(ctx context.Context, r io.Reader, loc *time.Location) (*ImportResult, error) {
	parsed, err := storage.ParseSchedule(r, loc)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListOfficialGames(ctx, storage.GameQuery{})
	if err != nil {
		return nil, fmt.Errorf("list official games: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, g := range existing {
		seen[gameKey(g)] = true
	}

	res := &ImportResult{Imported: []models.OfficialGame{}}
	for _, g := range parsed {
		if seen[gameKey(g)] {
			res.Skipped++
			continue
		}
		if err := s.LogOfficialGame(ctx, g); err != nil {
			return res, err
		}
		seen[gameKey(g)] = true
		res.Imported = append(res.Imported, *g)
	}
	return res, nil
}

func gameKey(g *models.OfficialGame) string {
	return g.Date.String() + "|" + strings.ToLower(strings.TrimSpace(g.Opponent))
}

func derefAll[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}

func logPtrs(logs []models.ShotLog) []*models.ShotLog {
	out := make([]*models.ShotLog, len(logs))
	for i := range logs {
		out[i] = &logs[i]
	}
	return out
}
