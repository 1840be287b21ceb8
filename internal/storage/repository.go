// ABOUTME: Repository interface for basketball training data storage.
// ABOUTME: List with filter/order/limit and insert, implemented by SQL and KV backends.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an ID or prefix.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousPrefix is returned when an ID prefix matches several records.
	ErrAmbiguousPrefix = errors.New("ambiguous prefix")

	// ErrReadOnly is returned on writes when another process holds the lock.
	ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")
)

// Order is the sort direction on the record date.
type Order int

const (
	// Desc sorts most recent first and is the default.
	Desc Order = iota
	// Asc sorts oldest first.
	Asc
)

// SessionQuery filters training sessions. Zero value lists everything,
// newest first.
type SessionQuery struct {
	From  *models.Date
	To    *models.Date
	Order Order
	Limit int
}

// GameQuery filters pickup or official games. Status only applies to
// official games.
type GameQuery struct {
	From   *models.Date
	To     *models.Date
	Status *models.GameStatus
	Order  Order
	Limit  int
}

// Repository defines the storage interface for training data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Training sessions and their shot logs
	CreateSession(ctx context.Context, s *models.TrainingSession, logs []models.ShotLog) error
	GetSession(ctx context.Context, idOrPrefix string) (*models.SessionWithShots, error)
	ListSessions(ctx context.Context, q SessionQuery) ([]*models.TrainingSession, error)
	ListShotLogs(ctx context.Context, sessionIDs []uuid.UUID) ([]*models.ShotLog, error)

	// Games
	CreatePickupGame(ctx context.Context, g *models.PickupGame) error
	ListPickupGames(ctx context.Context, q GameQuery) ([]*models.PickupGame, error)
	CreateOfficialGame(ctx context.Context, g *models.OfficialGame) error
	ListOfficialGames(ctx context.Context, q GameQuery) ([]*models.OfficialGame, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}

// Syncer is implemented by backends that replicate to a remote service.
type Syncer interface {
	Sync() error
	Reset() error
	ID() (string, error)
	IsReadOnly() bool
}

var (
	_ Repository = (*DB)(nil)
	_ Repository = (*KVStore)(nil)
	_ Repository = (*CharmStore)(nil)
)
