package morph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Basic is the canonical serialized form templates are reduced to for
// persistence, hashing, and deduplication. A Basic value is nil, a
// bool, an integer (int, int64, or uint64), a string, or a []Basic of
// further Basic values. Nothing else crosses the strategy boundary.
type Basic = any

// CheckBasic verifies that v is structurally valid canonical data,
// recursively. The returned error wraps ErrMalformedData.
func CheckBasic(v Basic) error {
	switch x := v.(type) {
	case nil, bool, int, int64, uint64, string:
		return nil
	case []Basic:
		for i, e := range x {
			if err := CheckBasic(e); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported canonical type %T: %w", v, ErrMalformedData)
	}
}

// CheckList asserts that v is a canonical list.
func CheckList(v Basic) ([]Basic, error) {
	l, ok := v.([]Basic)
	if !ok {
		return nil, fmt.Errorf("%T is not a list: %w", v, ErrMalformedData)
	}
	return l, nil
}

// CheckUint asserts that v is a non-negative integer and returns it
// widened to uint64.
func CheckUint(v Basic) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case int64:
		if x >= 0 {
			return uint64(x), nil
		}
	case int:
		if x >= 0 {
			return uint64(x), nil
		}
	}
	return 0, fmt.Errorf("%v (%T) is not a non-negative integer: %w", v, v, ErrMalformedData)
}

// CheckInt asserts that v is an integer representable as int64.
func CheckInt(v Basic) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x <= 1<<63-1 {
			return int64(x), nil
		}
	}
	return 0, fmt.Errorf("%v (%T) is not an int64: %w", v, v, ErrMalformedData)
}

// intKey renders any canonical integer kind as its decimal string, so
// int64(5), int(5) and uint64(5) compare and hash as the same value.
func intKey(v Basic) (string, bool) {
	switch x := v.(type) {
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	}
	return "", false
}

// BasicEqual reports deep structural equality of two canonical
// values. Integer kinds are compared by numeric value.
func BasicEqual(a, b Basic) bool {
	if la, ok := a.([]Basic); ok {
		lb, ok := b.([]Basic)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !BasicEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	if ka, ok := intKey(a); ok {
		kb, ok := intKey(b)
		return ok && ka == kb
	}
	return a == b
}

// Fingerprint returns a canonical string key for v, injective over
// the Basic domain: two values share a fingerprint exactly when
// BasicEqual holds. Used for first-seen tracking and hashing.
func Fingerprint(v Basic) string {
	var b strings.Builder
	fingerprint(&b, v)
	return b.String()
}

func fingerprint(b *strings.Builder, v Basic) {
	switch x := v.(type) {
	case nil:
		b.WriteString("z")
	case bool:
		fmt.Fprintf(b, "b:%t", x)
	case string:
		fmt.Fprintf(b, "s:%d:%s", len(x), x)
	case []Basic:
		fmt.Fprintf(b, "l:%d[", len(x))
		for _, e := range x {
			fingerprint(b, e)
			b.WriteByte(';')
		}
		b.WriteByte(']')
	default:
		if k, ok := intKey(x); ok {
			b.WriteString("i:")
			b.WriteString(k)
			return
		}
		// Not canonical; still deterministic so callers that skipped
		// CheckBasic get stable behavior.
		fmt.Fprintf(b, "?%T:%v", v, v)
	}
}

// MarshalBasic serializes a canonical value to JSON. The value is
// validated first.
func MarshalBasic(v Basic) ([]byte, error) {
	if err := CheckBasic(v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalBasic parses JSON produced by MarshalBasic back into a
// canonical value. Integers survive at full 64-bit range; any
// non-integer number or unsupported shape fails with
// ErrMalformedData.
func UnmarshalBasic(data []byte) (Basic, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode canonical json: %v: %w", err, ErrMalformedData)
	}
	return fromJSON(raw)
}

func fromJSON(v any) (Basic, error) {
	switch x := v.(type) {
	case nil, bool, string:
		return x, nil
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return u, nil
		}
		return nil, fmt.Errorf("non-integer number %q: %w", x.String(), ErrMalformedData)
	case []any:
		out := make([]Basic, len(x))
		for i, e := range x {
			var err error
			if out[i], err = fromJSON(e); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported json value %T: %w", v, ErrMalformedData)
	}
}
