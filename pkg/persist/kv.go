package persist

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrExists   = errors.New("key already exists")
	ErrLocked   = errors.New("data dir is in use by another process")
)

// lockFile can never clash with a key since keys may not start with a dot
const lockFile = ".lock"

// KV is a small durable key-value store
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Dir keeps one file per key inside a directory
type Dir struct {
	path string
}

// OpenDir creates the directory if needed
func OpenDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) Get(key string) ([]byte, error) {
	file, err := d.file(key)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return bs, err
}

// Set replaces the value of key atomically: readers see either the old
// value or the new one, never a partial write.
func (d *Dir) Set(key string, value []byte) error {
	file, err := d.file(key)
	if err != nil {
		return err
	}
	return atomic.WriteFile(file, bytes.NewReader(value))
}

// Lock takes the directory for this process only. A second Lock on the
// same directory, from this process or another, fails with ErrLocked
// until the returned lock is closed.
func (d *Dir) Lock() (*flock.Flock, error) {
	l := flock.New(filepath.Join(d.path, lockFile))
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", d.path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", d.path, ErrLocked)
	}
	return l, nil
}

// Rename moves the value stored under from to to. An existing value
// under to is never replaced; that is ErrExists.
func (d *Dir) Rename(from, to string) error {
	src, err := d.file(from)
	if err != nil {
		return err
	}
	dst, err := d.file(to)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		return ErrExists
	}
	err = os.Rename(src, dst)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (d *Dir) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.path, key), nil
}
