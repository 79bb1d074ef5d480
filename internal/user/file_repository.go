package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/filex"
)

// userRecord is the persisted form of a User. The password hash is only
// serialized here, never through the model's JSON tags.
type userRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileUserRepository keeps the whole credential collection in one JSON
// file. Every mutation loads the collection, applies the change, and
// atomically rewrites the file; the mutex serializes writers so the
// load-mutate-rewrite sequence is atomic as a unit.
type FileUserRepository struct {
	path string
	mu   sync.RWMutex
}

func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

func (r *FileUserRepository) Create(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	for _, rec := range records {
		if rec.Username == user.Username {
			logrus.WithField("username", user.Username).Warn("Registration rejected: username taken")
			return ErrDuplicateUsername
		}
	}

	records = append(records, userRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})

	if err := r.persist(records); err != nil {
		return err
	}

	logrus.WithField("username", user.Username).Info("User created successfully")
	return nil
}

func (r *FileUserRepository) GetByUsername(username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.load() {
		if rec.Username == username {
			return &User{
				Username:     rec.Username,
				PasswordHash: rec.PasswordHash,
				CreatedAt:    rec.CreatedAt,
			}, nil
		}
	}
	return nil, ErrUserNotFound
}

// load reads the full credential collection. A missing file is an empty
// store; a corrupt file is reported and treated as empty rather than
// taking the whole store down.
func (r *FileUserRepository) load() []userRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).WithField("path", r.path).Warn("Failed to read credential store, treating as empty")
		}
		return nil
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logrus.WithError(err).WithField("path", r.path).Warn("Credential store is corrupt, treating as empty")
		return nil
	}
	return records
}

func (r *FileUserRepository) persist(records []userRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential store: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("persist credential store: %w", err)
	}
	return nil
}
