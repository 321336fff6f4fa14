// internal/vault/vault.go
package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrVersionNotFound = errors.New("document version not found")

// VersionMeta stores metadata about a stored document version.
type VersionMeta struct {
	Hash       string    `json:"hash"`
	Size       int64     `json:"size"`
	Compressed bool      `json:"compressed"`
	CreatedAt  time.Time `json:"created_at"`
}

// Vault is content-addressed storage for document versions. Versions are
// deduplicated by sha256, compressed past a size threshold, and served
// through an LRU cache.
type Vault struct {
	root  string
	db    *badger.DB
	cache *lru.Cache[string, []byte]
	comp  *compressor
	mu    sync.RWMutex
}

// Options configures Vault behavior.
type Options struct {
	Root        string // Root directory for version files
	CacheSize   int    // Number of versions to cache
	CompressMin int    // Minimum size in bytes before compressing
}

// New creates a new Vault instance.
func New(db *badger.DB, opts Options) (*Vault, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if err := os.MkdirAll(opts.Root, 0755); err != nil {
		return nil, fmt.Errorf("creating root directory: %w", err)
	}

	if opts.CacheSize == 0 {
		opts.CacheSize = 128
	}
	cache, err := lru.New[string, []byte](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	comp, err := newCompressor(opts.CompressMin)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}

	return &Vault{
		root:  opts.Root,
		db:    db,
		cache: cache,
		comp:  comp,
	}, nil
}

// Store saves a document version and returns its hash. Storing the same
// content twice is a no-op returning the existing hash.
func (v *Vault) Store(content []byte) (string, error) {
	hash := hashContent(content)

	exists, err := v.Exists(hash)
	if err != nil {
		return "", fmt.Errorf("checking existence: %w", err)
	}
	if exists {
		return hash, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	data, compressed := v.comp.compress(content)

	path := v.versionPath(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating version directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing version file: %w", err)
	}

	meta := VersionMeta{
		Hash:       hash,
		Size:       int64(len(content)),
		Compressed: compressed,
		CreatedAt:  time.Now(),
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshaling metadata: %w", err)
	}
	err = v.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaKey(hash), metaData)
	})
	if err != nil {
		return "", fmt.Errorf("storing metadata: %w", err)
	}

	v.cache.Add(hash, content)
	return hash, nil
}

// Get returns the document version for a hash.
func (v *Vault) Get(hash string) ([]byte, error) {
	if content, ok := v.cache.Get(hash); ok {
		return content, nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	meta, err := v.meta(hash)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(v.versionPath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("reading version file: %w", err)
	}

	if meta.Compressed {
		data, err = v.comp.decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing version: %w", err)
		}
	}

	// Detect on-disk corruption before handing the content out.
	if hashContent(data) != hash {
		return nil, fmt.Errorf("%w: content hash mismatch for %s", ErrVersionNotFound, hash)
	}

	v.cache.Add(hash, data)
	return data, nil
}

// Exists reports whether a version is stored.
func (v *Vault) Exists(hash string) (bool, error) {
	if v.cache.Contains(hash) {
		return true, nil
	}
	_, err := v.meta(hash)
	if errors.Is(err, ErrVersionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (v *Vault) meta(hash string) (*VersionMeta, error) {
	var meta VersionMeta
	err := v.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(hash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	return &meta, nil
}

func (v *Vault) versionPath(hash string) string {
	return filepath.Join(v.root, hash[:2], hash)
}

func metaKey(hash string) []byte {
	return []byte("vault:" + hash)
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
