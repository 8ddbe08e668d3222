package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	toml "github.com/pelletier/go-toml/v2"

	"globalaccel/accel"
	"globalaccel/log"
)

// DefaultLockTimeout is the default timeout for acquiring locks
const DefaultLockTimeout = 5 * time.Second

var _ accel.LayeredStore = (*FileStore)(nil)

// entries maps group -> action name -> shortcut string.
type entries map[string]map[string]string

func (e entries) get(group, key string) (string, bool) {
	v, ok := e[group][key]
	return v, ok
}

func (e entries) set(group, key, value string) {
	if value == "" {
		delete(e[group], key)
		if len(e[group]) == 0 {
			delete(e, group)
		}
		return
	}
	if e[group] == nil {
		e[group] = make(map[string]string)
	}
	e[group][key] = value
}

// scope is one TOML file of the store.
type scope struct {
	path    string
	entries entries
	dirty   bool
}

// FileStore keeps shortcut strings in two TOML files: a local file that
// overrides a shared global one. Other processes may edit the files, so
// writes and reloads go through a file lock.
type FileStore struct {
	local  scope
	global scope

	lockFile    *flock.Flock
	lockTimeout time.Duration
}

// NewFileStore returns an empty store rooted at dir. Call Reload to read
// existing files.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		local:       scope{path: filepath.Join(dir, LocalFileName), entries: entries{}},
		global:      scope{path: filepath.Join(dir, GlobalFileName), entries: entries{}},
		lockFile:    flock.New(filepath.Join(dir, LockFileName)),
		lockTimeout: DefaultLockTimeout,
	}
}

// OpenFileStore creates a store for dir and loads it.
func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	s := NewFileStore(dir)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Paths returns the local and global file paths.
func (s *FileStore) Paths() (local, global string) {
	return s.local.path, s.global.path
}

// ReadEntry returns the local value if there is one, else the global one.
func (s *FileStore) ReadEntry(group, key string) (string, bool) {
	if v, ok := s.local.entries.get(group, key); ok {
		return v, true
	}
	return s.global.entries.get(group, key)
}

// ReadScope returns the entry held by the file flags select, ignoring the
// other one.
func (s *FileStore) ReadScope(group, key string, flags accel.WriteFlags) (string, bool) {
	return s.scopeFor(flags).entries.get(group, key)
}

// ReadBelow returns what the files under the one flags select yield: the
// global entry for the local file, nothing for the global file.
func (s *FileStore) ReadBelow(group, key string, flags accel.WriteFlags) (string, bool) {
	if flags.Global {
		return "", false
	}
	return s.global.entries.get(group, key)
}

func (s *FileStore) scopeFor(flags accel.WriteFlags) *scope {
	if flags.Global {
		return &s.global
	}
	return &s.local
}

// WriteEntry stores value in the scope chosen by flags. An empty value
// removes the entry.
func (s *FileStore) WriteEntry(group, key, value string, flags accel.WriteFlags) {
	sc := s.scopeFor(flags)
	if old, ok := sc.entries.get(group, key); ok && old == value {
		return
	}
	if _, ok := sc.entries.get(group, key); !ok && value == "" {
		return
	}
	sc.entries.set(group, key, value)
	sc.dirty = true
}

// Sync writes the modified files under an exclusive lock.
func (s *FileStore) Sync() error {
	if !s.local.dirty && !s.global.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.local.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()
	locked, err := s.lockFile.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return errors.New("could not acquire write lock within timeout")
	}
	defer s.lockFile.Unlock()

	for _, sc := range []*scope{&s.local, &s.global} {
		if !sc.dirty {
			continue
		}
		if err := writeScope(sc); err != nil {
			return err
		}
		sc.dirty = false
	}
	return nil
}

// Reload re-reads both files under a shared lock, dropping unsynced
// changes.
func (s *FileStore) Reload() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()
	locked, err := s.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return errors.New("could not acquire read lock within timeout")
	}
	defer s.lockFile.Unlock()

	for _, sc := range []*scope{&s.local, &s.global} {
		e, err := readScope(sc.path)
		if err != nil {
			return err
		}
		sc.entries = e
		sc.dirty = false
	}
	return nil
}

func readScope(path string) (entries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	e := entries{}
	if err := toml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return e, nil
}

// writeScope replaces the file atomically via a temporary file.
func writeScope(sc *scope) error {
	data, err := toml.Marshal(sc.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", sc.path, err)
	}
	tmpPath := sc.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, sc.path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			log.WarningLog.Printf("failed to remove %s: %v", tmpPath, rmErr)
		}
		return fmt.Errorf("failed to atomically update %s: %w", sc.path, err)
	}
	return nil
}
