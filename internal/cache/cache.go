package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"cflclosure/internal/grammar"
)

// Bump when Payload changes shape.
const schemaVersion uint16 = 1

// Key identifies a generation run: the grammar rules plus its limits.
type Key [sha256.Size]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFor hashes the rules of g (not its name) together with lim.
// Negative limits cannot be keyed and return an error.
func KeyFor(g *grammar.Grammar, lim grammar.Limits) (Key, error) {
	k, _, err := keyFor(g, lim)
	return k, err
}

type checkedLimits struct {
	maxLength, maxDepth uint32
}

// keyFor hashes a length-prefixed encoding of every rule so that distinct
// rule sets never share a key, whatever their productions contain.
func keyFor(g *grammar.Grammar, lim grammar.Limits) (Key, checkedLimits, error) {
	var cl checkedLimits
	var err error
	if cl.maxLength, err = safecast.Conv[uint32](lim.MaxLength); err != nil {
		return Key{}, cl, fmt.Errorf("max length %d: %w", lim.MaxLength, err)
	}
	if cl.maxDepth, err = safecast.Conv[uint32](lim.MaxDepth); err != nil {
		return Key{}, cl, fmt.Errorf("max depth %d: %w", lim.MaxDepth, err)
	}
	h := sha256.New()
	var buf [4]byte
	writeU32 := func(v uint32) {
		binary.BigEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	writeLen := func(n int) error {
		v, err := safecast.Conv[uint32](n)
		if err != nil {
			return err
		}
		writeU32(v)
		return nil
	}

	writeU32(cl.maxLength)
	writeU32(cl.maxDepth)
	rules := g.Rules()
	if err := writeLen(len(rules)); err != nil {
		return Key{}, cl, err
	}
	for _, r := range rules {
		writeU32(uint32(r.Head))
		if err := writeLen(len(r.Productions)); err != nil {
			return Key{}, cl, err
		}
		for _, p := range r.Productions {
			if err := writeLen(len(p)); err != nil {
				return Key{}, cl, err
			}
			h.Write([]byte(p))
		}
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k, cl, nil
}

// Payload is one cached string set.
type Payload struct {
	Schema    uint16
	Grammar   string
	MaxLength uint32
	MaxDepth  uint32
	Strings   []string
}

// Cache keeps generated string sets on disk, one msgpack file per key.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "sets", key.String()+".mp")
}

// Put writes payload atomically (temp file + rename).
func (c *Cache) Put(key Key, payload *Payload) (err error) {
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
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = schemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A missing file or a payload written by
// another schema version is a miss, not an error.
func (c *Cache) Get(key Key, out *Payload) (bool, error) {
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

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached set.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "sets"))
}

// Generate returns the cached set for (g, lim), generating and storing it
// on a miss. A nil cache just generates.
func (c *Cache) Generate(g *grammar.Grammar, lim grammar.Limits, gen func() grammar.Set) (grammar.Set, bool, error) {
	if c == nil {
		return gen(), false, nil
	}
	key, cl, err := keyFor(g, lim)
	if err != nil {
		return nil, false, err
	}
	var p Payload
	hit, err := c.Get(key, &p)
	if err != nil {
		return nil, false, err
	}
	if hit {
		return grammar.NewSet(p.Strings...), true, nil
	}
	set := gen()
	p = Payload{
		Grammar:   g.Name(),
		MaxLength: cl.maxLength,
		MaxDepth:  cl.maxDepth,
		Strings:   set.Sorted(),
	}
	if err := c.Put(key, &p); err != nil {
		return nil, false, err
	}
	return set, false, nil
}
