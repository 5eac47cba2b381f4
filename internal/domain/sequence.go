package domain

import (
	"encoding/json"
	"math"
	"reflect"
)

// Names of the counters that hand out entity ids.
const (
	BookSequence   = "bookId"
	AuthorSequence = "authorId"
	UserSequence   = "userId"
)

// Sequences lists every counter provisioned at setup.
var Sequences = []string{BookSequence, AuthorSequence, UserSequence}

// IsValidSequenceID reports whether v is a whole number greater than or equal to zero.
// It accepts the shapes a decoded JSON payload can produce (float64, json.Number)
// as well as any Go integer type. Strings, nil and fractional values are rejected.
func IsValidSequenceID(v any) bool {
	_, ok := ToSequenceID(v)
	return ok
}

// ToSequenceID converts v to an int64 id when IsValidSequenceID(v) holds.
func ToSequenceID(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		if n != math.Trunc(n) || n < 0 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return ToSequenceID(float64(n))
	case json.Number:
		i, err := n.Int64()
		if err != nil || i < 0 {
			return 0, false
		}
		return i, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return i, i >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

// ToSequenceIDs converts every element of vs, failing if any element is invalid.
func ToSequenceIDs(vs []any) ([]int64, bool) {
	ids := make([]int64, 0, len(vs))
	for _, v := range vs {
		id, ok := ToSequenceID(v)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
