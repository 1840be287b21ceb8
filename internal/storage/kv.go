// ABOUTME: Repository over a key-value backend, shared by badger and Charm.
// ABOUTME: Records are JSON values under typed key prefixes.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
	"go.uber.org/zap"
)

const (
	SessionPrefix  = "session:"
	ShotLogPrefix  = "shot_log:"
	PickupPrefix   = "pickup:"
	OfficialPrefix = "official:"
)

// kvEntry is one key/value pair in a batched write.
type kvEntry struct {
	key   []byte
	value []byte
}

// kvBackend is the minimal key-value surface a store needs.
// Get returns ErrNotFound for missing keys.
type kvBackend interface {
	Get(key []byte) ([]byte, error)
	SetMany(entries []kvEntry) error
	Keys(prefix []byte) ([][]byte, error)
	Close() error
}

// KVStore implements Repository on a key-value backend.
type KVStore struct {
	kv     kvBackend
	mu     sync.RWMutex
	logger *zap.Logger
}

func newKVStore(kv kvBackend, logger *zap.Logger) *KVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVStore{kv: kv, logger: logger}
}

// Close closes the KV backend.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Close()
}

func sessionKey(id uuid.UUID) []byte {
	return []byte(SessionPrefix + id.String())
}

func shotLogKey(sessionID, logID uuid.UUID) []byte {
	return []byte(ShotLogPrefix + sessionID.String() + ":" + logID.String())
}

// CreateSession stores a session and its shot logs in one batch.
func (s *KVStore) CreateSession(_ context.Context, session *models.TrainingSession, logs []models.ShotLog) error {
	if err := validateSession(session, logs); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	entries := make([]kvEntry, 0, len(logs)+1)
	data, err := marshalJSON(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	entries = append(entries, kvEntry{key: sessionKey(session.ID), value: data})

	for i := range logs {
		data, err := marshalJSON(&logs[i])
		if err != nil {
			return fmt.Errorf("marshal shot log: %w", err)
		}
		entries = append(entries, kvEntry{key: shotLogKey(session.ID, logs[i].ID), value: data})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.kv.Get(sessionKey(session.ID)); err == nil {
		return fmt.Errorf("create session: %s already exists", session.ID)
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("create session: %w", err)
	}

	if err := s.kv.SetMany(entries); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.logger.Debug("created session", zap.String("id", session.ID.String()), zap.Int("shot_logs", len(logs)))
	return nil
}

// GetSession retrieves a session and its shot logs by ID or ID prefix.
func (s *KVStore) GetSession(ctx context.Context, idOrPrefix string) (*models.SessionWithShots, error) {
	data, err := s.getByIDPrefix(SessionPrefix, idOrPrefix)
	if err != nil {
		return nil, err
	}
	session, err := unmarshalJSON[models.TrainingSession](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	logs, err := s.ListShotLogs(ctx, []uuid.UUID{session.ID})
	if err != nil {
		return nil, err
	}
	joined := JoinShots([]*models.TrainingSession{session}, logs)
	return &joined[0], nil
}

// ListSessions filters, sorts, and limits sessions in memory.
func (s *KVStore) ListSessions(_ context.Context, q SessionQuery) ([]*models.TrainingSession, error) {
	sessions, err := listByPrefix[models.TrainingSession](s, SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return q.apply(sessions), nil
}

// ListShotLogs retrieves every shot log whose session is in sessionIDs.
func (s *KVStore) ListShotLogs(_ context.Context, sessionIDs []uuid.UUID) ([]*models.ShotLog, error) {
	logs := []*models.ShotLog{}
	for _, id := range sessionIDs {
		found, err := listByPrefix[models.ShotLog](s, ShotLogPrefix+id.String()+":")
		if err != nil {
			return nil, fmt.Errorf("list shot logs: %w", err)
		}
		logs = append(logs, found...)
	}
	return logs, nil
}

// CreatePickupGame stores a new pickup game.
func (s *KVStore) CreatePickupGame(_ context.Context, g *models.PickupGame) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("create pickup game: %w", err)
	}
	return s.put(PickupPrefix+g.ID.String(), g)
}

// ListPickupGames filters, sorts, and limits pickup games in memory.
func (s *KVStore) ListPickupGames(_ context.Context, q GameQuery) ([]*models.PickupGame, error) {
	games, err := listByPrefix[models.PickupGame](s, PickupPrefix)
	if err != nil {
		return nil, fmt.Errorf("list pickup games: %w", err)
	}
	return q.applyPickup(games), nil
}

// CreateOfficialGame stores a scheduled, completed, or cancelled game.
func (s *KVStore) CreateOfficialGame(_ context.Context, g *models.OfficialGame) error {
	if err := validateOfficialGame(g); err != nil {
		return fmt.Errorf("create official game: %w", err)
	}
	return s.put(OfficialPrefix+g.ID.String(), g)
}

// ListOfficialGames filters, sorts, and limits official games in memory.
func (s *KVStore) ListOfficialGames(_ context.Context, q GameQuery) ([]*models.OfficialGame, error) {
	games, err := listByPrefix[models.OfficialGame](s, OfficialPrefix)
	if err != nil {
		return nil, fmt.Errorf("list official games: %w", err)
	}
	return q.applyOfficial(games), nil
}

// GetAllData retrieves all data for export.
func (s *KVStore) GetAllData(ctx context.Context) (*ExportData, error) {
	return collectAll(ctx, s)
}

// ImportData imports data from an export file.
func (s *KVStore) ImportData(ctx context.Context, data *ExportData) error {
	return importAll(ctx, s, data)
}

func (s *KVStore) put(key string, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.SetMany([]kvEntry{{key: []byte(key), value: data}})
}

// listByPrefix decodes every value under prefix. Undecodable values are
// skipped and logged.
func listByPrefix[T any](s *KVStore, prefix string) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.kv.Keys([]byte(prefix))
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		data, err := s.kv.Get(key)
		if err != nil {
			return nil, err
		}
		v, err := unmarshalJSON[T](data)
		if err != nil {
			s.logger.Warn("skipping undecodable record", zap.ByteString("key", key), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// getByIDPrefix retrieves a single value by ID prefix match.
// Returns error if no match or multiple matches found.
func (s *KVStore) getByIDPrefix(typePrefix, idPrefix string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.kv.Keys([]byte(typePrefix + idPrefix))
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idPrefix)
	}
	if len(keys) > 1 {
		return nil, fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, idPrefix)
	}
	return s.kv.Get(keys[0])
}

// unmarshalJSON is a helper to unmarshal JSON data into a typed value.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// marshalJSON is a helper to marshal data to JSON.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
