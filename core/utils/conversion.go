package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int16:
		return int(v)
	case int8:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case uint16:
		return int(v)
	case uint8:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	case []byte:
		i, _ := strconv.Atoi(string(v))
		return i
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.Atoi(s)
		return i
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return ToInt(v) == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	default:
		return false
	}
}

// MapSliceToMap converts an ordered YAML mapping into a plain
// string-keyed map for JSON rendering. Nested mappings and sequences
// are converted recursively.
func MapSliceToMap(doc yaml.MapSlice) map[string]any {
	out := make(map[string]any, len(doc))
	for _, item := range doc {
		out[ToString(item.Key)] = jsonValue(item.Value)
	}
	return out
}

func jsonValue(val any) any {
	switch v := val.(type) {
	case yaml.MapSlice:
		return MapSliceToMap(v)
	case []any:
		converted := make([]any, 0, len(v))
		for _, item := range v {
			converted = append(converted, jsonValue(item))
		}
		return converted
	default:
		return val
	}
}

// ToStringSlice converts a decoded YAML sequence to a string slice,
// preserving element order. Non-sequence values yield an empty slice.
func ToStringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, ToString(item))
		}
		return out
	default:
		return []string{}
	}
}
