package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloudstream/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names. Key names match the original on-device layout.
var (
	bucketState = []byte("state")

	keyWatchHistory = []byte("watchHistory")
	keyDriveConfig  = []byte("driveConfig")
	keyAccessToken  = []byte("accessToken")
	keyTokenExpiry  = []byte("tokenExpiry")
	keyUser         = []byte("user")
)

type driveConfig struct {
	ClientID string `json:"clientId"`
	APIKey   string `json:"apiKey"`
}

// LocalStore implements domain.Store on BoltDB. Every write happens inside a
// single bolt transaction, so a saved collection is either fully persisted
// or not at all.
type LocalStore struct {
	db *bolt.DB

	// Memory-only fallback used when no data directory is configured.
	mem map[string][]byte
}

// NewLocalStore opens (or creates) the local database under dataDir. An
// empty dataDir yields a memory-only store with no persistence.
func NewLocalStore(dataDir string) (*LocalStore, error) {
	if dataDir == "" {
		return &LocalStore{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "cloudstream.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LocalStore) put(key []byte, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if s.db == nil {
		s.mem[string(key)] = data
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(key, data)
	})
}

func (s *LocalStore) get(key []byte, dest interface{}) bool {
	var data []byte
	if s.db == nil {
		data = s.mem[string(key)]
	} else {
		s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketState).Get(key); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
	}
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *LocalStore) delete(keys ...[]byte) error {
	if s.db == nil {
		for _, k := range keys {
			delete(s.mem, string(k))
		}
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Watch history ===

func (s *LocalStore) SaveHistory(entries []domain.WatchHistoryEntry) error {
	return s.put(keyWatchHistory, entries)
}

func (s *LocalStore) LoadHistory() ([]domain.WatchHistoryEntry, error) {
	var entries []domain.WatchHistoryEntry
	s.get(keyWatchHistory, &entries)
	return entries, nil
}

// === Session ===

func (s *LocalStore) SaveSession(sess domain.Session) error {
	if err := s.put(keyAccessToken, sess.AccessToken); err != nil {
		return err
	}
	if err := s.put(keyTokenExpiry, sess.Expiry); err != nil {
		return err
	}
	if sess.User != nil {
		return s.put(keyUser, sess.User)
	}
	return nil
}

func (s *LocalStore) LoadSession() (domain.Session, bool) {
	var sess domain.Session
	if !s.get(keyAccessToken, &sess.AccessToken) || sess.AccessToken == "" {
		return domain.Session{}, false
	}
	s.get(keyTokenExpiry, &sess.Expiry)
	var user domain.User
	if s.get(keyUser, &user) {
		sess.User = &user
	}
	return sess, true
}

func (s *LocalStore) ClearSession() error {
	return s.delete(keyAccessToken, keyTokenExpiry, keyUser)
}

// === Drive credentials ===

func (s *LocalStore) SaveDriveConfig(clientID, apiKey string) error {
	return s.put(keyDriveConfig, driveConfig{ClientID: clientID, APIKey: apiKey})
}

func (s *LocalStore) LoadDriveConfig() (string, string, bool) {
	var cfg driveConfig
	if !s.get(keyDriveConfig, &cfg) || cfg.ClientID == "" {
		return "", "", false
	}
	return cfg.ClientID, cfg.APIKey, true
}
