// Package yamlenv provides config values that are read from yaml but may
// be overridden through environment variables using the ${VAR} or
// ${VAR:default} syntax.
package yamlenv

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env is a single configuration value of type T.
type Env[T any] struct {
	Value T
	raw   string
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("yamlenv: expected scalar at line %d", node.Line)
	}

	raw := expand(node.Value)
	e.raw = raw

	val, err := parse[T](raw)
	if err != nil {
		return fmt.Errorf("yamlenv: parse %q: %w", raw, err)
	}

	e.Value = val

	return nil
}

func (e *Env[T]) String() string {
	if e == nil {
		return ""
	}
	return e.raw
}

// expand substitutes ${VAR} and ${VAR:default} references.
func expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	return os.Expand(s, func(key string) string {
		name, def, hasDef := strings.Cut(key, ":")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if hasDef {
			return def
		}
		return ""
	})
}

func parse[T any](raw string) (T, error) {
	var out T

	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return out, err
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return out, err
		}
		*p = n
	case *bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return out, err
		}
		*p = b
	case *float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return out, err
		}
		*p = f
	default:
		return out, fmt.Errorf("unsupported type %T", out)
	}

	return out, nil
}
