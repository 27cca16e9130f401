// Package i18n resolves user-facing message strings from embedded YAML
// catalogs. Every prompt the bot sends is pre-composed here; raw internal
// errors are never shown to users.
package i18n

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var catalogFS embed.FS

// Translator resolves localized strings using dot-separated keys.
type Translator interface {
	// T returns the message for key, falling back to the default language and
	// finally to the key itself.
	T(key string) string
	// Tf formats the message for key with fmt.Sprintf.
	Tf(key string, args ...any) string
	Lang() string
}

// Manager stores all available translations.
type Manager struct {
	translations map[string]map[string]string
	defaultLang  string
}

// Load parses every embedded catalog and returns a Manager with the given
// default language.
func Load(defaultLang string) (*Manager, error) {
	entries, err := catalogFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalogs: %w", err)
	}

	catalog := make(map[string]map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		lang := strings.TrimSuffix(name, filepath.Ext(name))

		data, err := catalogFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}

		var nested map[string]any
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		catalog[lang] = flat
	}

	if defaultLang == "" {
		defaultLang = "uz"
	}

	if _, ok := catalog[defaultLang]; !ok {
		return nil, fmt.Errorf("i18n: default language %q is missing", defaultLang)
	}

	return &Manager{translations: catalog, defaultLang: defaultLang}, nil
}

// Translator returns a translator for the requested language, falling back to
// the default language for unknown languages and missing keys.
func (m *Manager) Translator(lang string) Translator {
	if m == nil {
		return translator{}
	}

	if _, ok := m.translations[lang]; !ok {
		lang = m.defaultLang
	}

	return translator{
		lang:     lang,
		messages: m.translations[lang],
		fallback: m.translations[m.defaultLang],
	}
}

// Default returns the translator for the default language.
func (m *Manager) Default() Translator {
	if m == nil {
		return translator{}
	}
	return m.Translator(m.defaultLang)
}

type translator struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

func (t translator) T(key string) string {
	if msg, ok := t.messages[key]; ok {
		return msg
	}
	if msg, ok := t.fallback[key]; ok {
		return msg
	}
	return key
}

func (t translator) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

func (t translator) Lang() string {
	return t.lang
}

func flatten(prefix string, nested map[string]any, out map[string]string) {
	for key, value := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case string:
			out[full] = v
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}
