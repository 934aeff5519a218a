// Package cache provides a content-addressed disk cache of resolved
// layout facts, so a caller can skip re-resolving an unchanged structure
// definition (cmd/sdlc does so for --check runs only).
package cache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sdlc/internal/project"
)

const diskCacheSchemaVersion uint16 = 1

// DiskCache stores layout facts keyed by a project.Digest combining a
// source file's content hash with the layout options (--align, --b32/
// --b64, enabled languages) that can change the result. Safe for
// concurrent use across the language fan-out in internal/dispatch.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// MemberLayout is one aggregate member's resolved placement.
type MemberLayout struct {
	Name       string
	Offset     int
	BitOffset  int
	LengthBits int
	Size       int
}

// AggregateLayout is the cached result of laying out a single structure
// or union.
type AggregateLayout struct {
	Name      string
	Size      int
	Alignment int
	Members   []MemberLayout
}

// DiskPayload is the unit stored per cache key: every aggregate resolved
// while processing one source file under one set of layout options.
type DiskPayload struct {
	Schema     uint16
	SourceHash project.Digest
	Aggregates []AggregateLayout
	// Broken reports whether the cached run ended with a fatal
	// diagnostic. A --check-only rerun with a matching key and Broken
	// false can skip re-resolving the source entirely.
	Broken bool
}

// OpenDiskCache initializes and returns a disk cache at the standard
// XDG cache location, creating it if absent.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "layouts", hexKey+".mp")
}

// Put serializes and atomically writes a payload for key.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	payload.Schema = diskCacheSchemaVersion
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload for key. The second return value
// reports whether a valid entry was found.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache by renaming its directory aside and
// removing it.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
