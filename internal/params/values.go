package params

import (
	"encoding/json"
	"math"
)

// Int reads an integer parameter, accepting JSON numbers and Go ints.
func Int(p map[string]interface{}, key string, fallback int) int {
	val, ok := p[key]
	if !ok {
		return fallback
	}
	switch v := val.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(math.Round(float64(v)))
	case float64:
		return int(math.Round(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return int(math.Round(f))
		}
	}
	return fallback
}

// Float reads a floating point parameter.
func Float(p map[string]interface{}, key string, fallback float64) float64 {
	val, ok := p[key]
	if !ok {
		return fallback
	}
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return fallback
}

// Bool reads a boolean parameter.
func Bool(p map[string]interface{}, key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}
