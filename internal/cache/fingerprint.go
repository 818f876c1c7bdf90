// Package cache implements the content-addressed extraction cache (§4.4):
// a fingerprint derived from document content plus the effective config
// selects a disk artifact, concurrent requests for the same fingerprint are
// coalesced via singleflight, and an oldest-first sweep keeps the cache
// directory under a size ceiling.
package cache

import (
	"encoding/base64"
	"encoding/json"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// cacheVersion is bumped whenever the on-disk artifact format or the
// fingerprint derivation changes, invalidating every previously cached entry.
const cacheVersion = "v1"

// Fingerprint derives the cache key for content extracted under cfg. UseCache
// itself is excluded from the config digest since it never affects the
// extraction's output, only whether the cache is consulted at all.
func Fingerprint(content []byte, cfg domain.ExtractionConfig) (string, error) {
	canon, err := canonicalConfigJSON(cfg)
	if err != nil {
		return "", domain.WrapError(domain.KindSerialization, err, "canonicalize config for fingerprint")
	}

	h := xxhash.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(canon)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(cacheVersion))
	sum := h.Sum(nil)

	return cacheVersion + "-" + base64.RawURLEncoding.EncodeToString(sum), nil
}

// canonicalConfigJSON marshals the parts of cfg that affect extraction output
// into a stable byte sequence: map keys sorted, scheduling knobs that never
// change the result (UseCache, MaxConcurrentExtractions) zeroed out. Without
// this, effectiveConfig's GOMAXPROCS default on the batch path would fingerprint
// batch items under a different key than an equivalent single call.
func canonicalConfigJSON(cfg domain.ExtractionConfig) ([]byte, error) {
	cfg.UseCache = false
	cfg.MaxConcurrentExtractions = 0
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return marshalCanonical(generic)
}

// marshalCanonical re-encodes v with object keys sorted, so two
// field-for-field-equal configs always hash identically regardless of
// encoding/json's (stable but not contractually ordered) map iteration.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf []byte
		buf = append(buf, '{')
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, _ := json.Marshal(k)
			buf = append(buf, kb...)
			buf = append(buf, ':')
			vb, err := marshalCanonical(val[k])
			if err != nil {
				return nil, err
			}
			buf = append(buf, vb...)
		}
		buf = append(buf, '}')
		return buf, nil
	case []any:
		var buf []byte
		buf = append(buf, '[')
		for i, e := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			eb, err := marshalCanonical(e)
			if err != nil {
				return nil, err
			}
			buf = append(buf, eb...)
		}
		buf = append(buf, ']')
		return buf, nil
	default:
		return json.Marshal(val)
	}
}
