// Package loader provides configuration sources that are not plain files.
package loader

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvProvider reads configuration from environment variables. It
// implements the koanf Provider interface, so it can be layered over file
// sources with koanf.Load(provider, nil).
type EnvProvider struct {
	prefix  string            // Environment variable prefix (e.g., "REBIND_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvProvider creates a provider for variables starting with prefix.
// The prefix should include the trailing underscore (e.g., "REBIND_").
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// defaultEnvMapping returns mappings for variables whose names do not
// follow the SECTION_KEY pattern.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG":     "log.level",
		prefix + "KEYMAP":  "keymap.path",
		prefix + "JOURNAL": "journal.path",
		prefix + "SCRIPT":  "script.path",
	}
}

// AddMapping adds a custom environment variable mapping.
func (p *EnvProvider) AddMapping(envVar, configPath string) {
	if p.mapping == nil {
		p.mapping = make(map[string]string)
	}
	p.mapping[envVar] = configPath
}

// SetEnviron replaces the environment source, normally os.Environ.
func (p *EnvProvider) SetEnviron(fn func() []string) {
	if fn == nil {
		fn = os.Environ
	}
	p.environ = fn
}

// ReadBytes is not supported; the provider yields a map directly.
func (p *EnvProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("env provider does not support ReadBytes")
}

// Read returns the nested configuration map built from the environment.
// Empty values are kept: setting a variable to "" overrides the file.
func (p *EnvProvider) Read() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range p.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, p.prefix) {
			continue
		}

		path, mapped := p.mapping[name]
		if !mapped {
			path = p.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}

	return config, nil
}

// envToPath converts REBIND_JOURNAL_ENABLED to journal.enabled. The first
// word is the section; the rest form a snake_case key.
func (p *EnvProvider) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, p.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only try floats with a decimal point to avoid misreading ints.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	// JSON array/object, e.g. REBIND_DEBUG_PLAYERS='[0, 2]'
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
