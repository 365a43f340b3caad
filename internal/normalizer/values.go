package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Placeholder is shown for fields the backend left empty.
const Placeholder = "غير محدد"

// Truthy reports whether v counts as present: nil, false, "", and zero
// numbers do not.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	default:
		return true
	}
}

// Stringify renders a decoded JSON value as text.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// first returns the first present value among keys.
func (r RawRecord) first(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && Truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// Text returns the first present value among keys as text, or def.
func (r RawRecord) Text(def string, keys ...string) string {
	if v, ok := r.first(keys...); ok {
		return Stringify(v)
	}
	return def
}
