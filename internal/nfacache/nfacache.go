// Package nfacache persists compiled NFAs to disk, keyed by a hash of
// their pattern source, so a repeated Compile of the same pattern can
// skip grammar parsing, AST construction, and Thompson compilation.
//
// It mirrors the read/write shape of the teacher's internal/serialization
// package (WriteJSON/ReadJSON/SaveJSON/LoadJSON) but trades JSON for CBOR:
// an NFA is a flat, schema-stable []compiler.State with no open-ended
// property maps, so it needs none of JSON's self-describing tagging —
// CBOR's binary encoding is smaller and faster to decode for that shape.
package nfacache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"

	"github.com/ritamzico/pregex/internal/compiler"
)

// CacheError reports a corrupt or unreadable on-disk cache entry. It is
// always a soft failure: callers fall through to recompiling the
// pattern from source rather than treating it as fatal.
type CacheError struct {
	Path    string
	Message string
	Err     error
}

func (e CacheError) Error() string {
	return "nfacache: " + e.Message + ": " + e.Path
}

func (e CacheError) Unwrap() error { return e.Err }

type entry struct {
	States []compiler.State
}

// Load looks up a previously Stored NFA for the given pattern source.
// A false ok (with a nil error) means a plain cache miss; a non-nil
// error means an entry existed but could not be read or decoded, and
// is always a CacheError the caller may log and ignore.
func Load(cacheDir, source string) (compiler.NFA, bool, error) {
	path := entryPath(cacheDir, source)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, CacheError{Path: path, Message: "failed to read cache entry", Err: err}
	}

	var e entry
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, false, CacheError{Path: path, Message: "failed to decode cache entry", Err: err}
	}

	log.Debug().Str("path", path).Int("states", len(e.States)).Msg("nfa cache hit")
	return compiler.NFA(e.States), true, nil
}

// Store writes a compiled NFA to the cache under a key derived from its
// pattern source. A write failure is reported but never fatal to the
// caller: a cache is an optimization, not a source of truth.
func Store(cacheDir, source string, nfa compiler.NFA) error {
	path := entryPath(cacheDir, source)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return CacheError{Path: path, Message: "failed to create cache directory", Err: err}
	}

	data, err := cbor.Marshal(entry{States: []compiler.State(nfa)})
	if err != nil {
		return CacheError{Path: path, Message: "failed to encode cache entry", Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return CacheError{Path: path, Message: "failed to write cache entry", Err: err}
	}

	log.Debug().Str("path", path).Int("states", len(nfa)).Msg("nfa cache store")
	return nil
}

func entryPath(cacheDir, source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(cacheDir, hex.EncodeToString(sum[:])+".cbor")
}
