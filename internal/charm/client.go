// ABOUTME: Charm KV client wrapper for wellness data storage.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package charm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/agewell/internal/storage"
)

const (
	dbName           = "agewell"
	defaultCharmHost = "charm.2389.dev"

	HabitPrefix      = "habit:"
	HabitEntryPrefix = "habit_entry:"
	CyclePrefix      = "cycle:"
	ProfileKey       = "profile"
)

// ErrReadOnly is returned for writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// kvStore is the subset of *kv.KV the client uses.
type kvStore interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
	IsReadOnly() bool
}

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client stores wellness records in Charm KV and implements storage.Repository.
type Client struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex
}

// Compile-time check that Client implements Repository.
var _ storage.Repository = (*Client)(nil)

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", defaultCharmHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(dbName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = newClient(db)

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// GetClient returns the global client, initializing if needed.
func GetClient() (*Client, error) {
	return InitClient()
}

func newClient(store kvStore) *Client {
	return &Client{kv: store, autoSync: true}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Wipe deletes every agewell key locally and, once synced, remotely.
func (c *Client) Wipe() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return 0, ErrReadOnly
	}
	keys, err := c.kv.Keys()
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil {
			return deleted, err
		}
		deleted++
	}
	c.syncIfEnabled()
	return deleted, nil
}

// set stores a value with the given key.
func (c *Client) set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// get returns the value for key or storage.ErrNotFound.
func (c *Client) get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if string(k) == key {
			return c.kv.Get(k)
		}
	}
	return nil, storage.NotFoundError(key)
}

// delete removes a key.
func (c *Client) delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// listByPrefix returns all values with keys matching the given prefix.
func (c *Client) listByPrefix(prefix string) ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var results [][]byte
	prefixBytes := []byte(prefix)

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if bytes.HasPrefix(key, prefixBytes) {
			val, err := c.kv.Get(key)
			if err != nil {
				return nil, err
			}
			results = append(results, val)
		}
	}

	return results, nil
}

// resolveKey finds the full key for an ID or ID prefix under typePrefix.
func (c *Client) resolveKey(typePrefix, idOrPrefix string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return "", err
	}

	var ids []string
	for _, key := range keys {
		if bytes.HasPrefix(key, []byte(typePrefix)) {
			ids = append(ids, string(key[len(typePrefix):]))
		}
	}

	id, err := storage.MatchPrefix(ids, idOrPrefix)
	if err != nil {
		return "", err
	}
	return typePrefix + id, nil
}

// unmarshalJSON is a helper to unmarshal JSON data.
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
