// ABOUTME: Charm KV backend with automatic cloud sync.
// ABOUTME: Data is end-to-end encrypted and replicated through a Charm server.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

const (
	// DefaultCharmHost is the Charm server used when none is configured.
	DefaultCharmHost = "charm.2389.dev"
	charmDBName      = "hoops"
)

type charmKV struct {
	kv       *kv.KV
	autoSync bool
	logger   *zap.Logger
}

// CharmStore is a KVStore replicated through Charm Cloud.
type CharmStore struct {
	*KVStore
	backend *charmKV
	mu      sync.Mutex
}

// OpenCharm opens the hoops Charm KV database against host, pulling remote
// data first unless another process holds the lock.
func OpenCharm(host string, logger *zap.Logger) (*CharmStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if host == "" {
		host = DefaultCharmHost
	}

	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, fmt.Errorf("set charm host: %w", err)
	}

	db, err := kv.OpenWithDefaultsFallback(charmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	backend := &charmKV{kv: db, autoSync: true, logger: logger}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		if err := db.Sync(); err != nil {
			logger.Warn("initial charm sync failed", zap.Error(err))
		}
	} else {
		logger.Info("charm database is read-only; another process holds the lock")
	}

	return &CharmStore{
		KVStore: newKVStore(backend, logger),
		backend: backend,
	}, nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *CharmStore) IsReadOnly() bool {
	return c.backend.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmStore) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend.kv.IsReadOnly() {
		return nil
	}
	return c.backend.kv.Sync()
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *CharmStore) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *CharmStore) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backend.kv.Reset()
}

func (c *charmKV) Get(key []byte) ([]byte, error) {
	val, err := c.kv.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return val, err
}

func (c *charmKV) SetMany(entries []kvEntry) error {
	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	for _, e := range entries {
		if err := c.kv.Set(e.key, e.value); err != nil {
			return err
		}
	}
	c.syncIfEnabled()
	return nil
}

// syncIfEnabled pushes writes when autoSync is on. Failures are logged;
// the local write already succeeded.
func (c *charmKV) syncIfEnabled() {
	if !c.autoSync || c.kv.IsReadOnly() {
		return
	}
	if err := c.kv.Sync(); err != nil {
		c.logger.Warn("charm sync after write failed", zap.Error(err))
	}
}

func (c *charmKV) Keys(prefix []byte) ([][]byte, error) {
	all, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	var keys [][]byte
	for _, key := range all {
		if bytes.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *charmKV) Close() error {
	return c.kv.Close()
}

// WipeCharm deletes the hoops database locally and on the Charm server and
// returns a short summary of what was removed.
func WipeCharm(host string) (string, error) {
	if host == "" {
		host = DefaultCharmHost
	}
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return "", fmt.Errorf("set charm host: %w", err)
	}

	res, err := kv.Wipe(charmDBName)
	if err != nil {
		return "", fmt.Errorf("wipe charm kv: %w", err)
	}
	return fmt.Sprintf("%d cloud backups, %d local files", res.CloudBackupsDeleted, res.LocalFilesDeleted), nil
}

// RepairReport lists what a Charm database repair did.
type RepairReport struct {
	WalCheckpointed bool
	ShmRemoved      bool
	IntegrityOK     bool
	Vacuumed        bool
}

// RepairCharm checkpoints the WAL, removes a stale SHM file, checks
// integrity and vacuums the local hoops database. The report is filled
// in even when the repair fails partway.
func RepairCharm(force bool) (RepairReport, error) {
	res, err := kv.Repair(charmDBName, force)
	report := RepairReport{
		WalCheckpointed: res.WalCheckpointed,
		ShmRemoved:      res.ShmRemoved,
		IntegrityOK:     res.IntegrityOK,
		Vacuumed:        res.Vacuumed,
	}
	if err != nil {
		return report, fmt.Errorf("repair charm kv: %w", err)
	}
	return report, nil
}

var _ Syncer = (*CharmStore)(nil)
