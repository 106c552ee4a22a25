package tools

import (
	"fmt"
	"strconv"
)

// Argument coercion for JSON-decoded tool arguments. JSON numbers decode
// as float64, but agent frameworks are sloppy about numeric vs string, so
// numeric arguments accept both.

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

func floatArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	return coerceFloat(key, v)
}

// idArg extracts a required integer identifier.
func idArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer id", key)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer id", key)
	}
}

// optionalStringArg distinguishes absent from supplied: nil means the
// argument was not provided at all.
func optionalStringArg(args map[string]any, key string) (*string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, fmt.Errorf("argument %q must be a string", key)
	}
	return &s, nil
}

func optionalFloatArg(args map[string]any, key string) (*float64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := coerceFloat(key, v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func coerceFloat(key string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be a number", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
}
