package adapter

import "strings"

// Config is a flat, provider-specific strategy configuration.
type Config map[string]any

// String returns the field as a string, or "" when absent or not a string.
func (c Config) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Has reports whether the field is present.
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Redacted returns a copy safe to print: secret-looking string fields are masked.
func (c Config) Redacted() Config {
	out := make(Config, len(c))
	for k, v := range c {
		if s, ok := v.(string); ok && s != "" && isSecretField(k) {
			out[k] = "********"
			continue
		}
		out[k] = v
	}
	return out
}

func isSecretField(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "secret") || strings.Contains(k, "privatekey")
}
