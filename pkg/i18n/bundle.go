package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback locale every bundle must define.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every loaded locale. Messages without
// template actions are also published to an x/text catalog.
type Bundle struct {
	locales map[string]map[string]string
	catalog *catalog.Builder
}

//go:embed locales/*/*.yaml
var embedded embed.FS

// LoadEmbedded loads the catalogs shipped with the package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// MustLoadEmbedded is LoadEmbedded for package initialisation.
func MustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFromFS loads every locales/*/*.yaml file of fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}

	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	if err := b.register(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	locale := strings.TrimSpace(file.Locale)
	if locale != dirLocale {
		return fmt.Errorf("catalog %s: locale %q must match directory %q", p, locale, dirLocale)
	}
	namespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.TrimSpace(file.Namespace) != namespace {
		return fmt.Errorf("catalog %s: namespace %q must match file name %q", p, file.Namespace, namespace)
	}

	messages, ok := b.locales[locale]
	if !ok {
		messages = map[string]string{}
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: blank message key", p)
		}
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("catalog %s: key %q outside namespace %q", p, key, namespace)
		}
		if _, dup := messages[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q", p, key)
		}
		messages[key] = value
	}
	return nil
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for l := range b.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Message returns the raw template for key, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if msgs, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if v, ok := msgs[key]; ok {
			return v, true
		}
	}
	v, ok := b.locales[BaseLocale][key]
	return v, ok
}

// Keys returns every key defined for locale, sorted.
func (b *Bundle) Keys(locale string) []string {
	msgs := b.locales[strings.TrimSpace(locale)]
	out := make([]string, 0, len(msgs))
	for k := range msgs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// register publishes every plain message to the bundle's catalog under each
// locale's tag. Locales inherit base messages they do not define.
func (b *Bundle) register() error {
	b.catalog = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		for _, key := range b.Keys(BaseLocale) {
			raw, _ := b.Message(locale, key)
			if isTemplate(raw) {
				continue
			}
			if err := b.catalog.SetString(tag, key, escapeVerbs(raw)); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
		for _, key := range b.Keys(locale) {
			raw := b.locales[locale][key]
			if isTemplate(raw) {
				continue
			}
			if err := b.catalog.SetString(tag, key, escapeVerbs(raw)); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// Printer returns an x/text printer for locale backed by the bundle's
// catalog.
func (b *Bundle) Printer(locale string) *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || !b.HasLocale(locale) {
		tag = language.MustParse(BaseLocale)
	}
	return message.NewPrinter(tag, message.Catalog(b.catalog))
}

func isTemplate(raw string) bool { return strings.Contains(raw, "{{") }

// escapeVerbs keeps printf verbs in catalog text literal.
func escapeVerbs(raw string) string { return strings.ReplaceAll(raw, "%", "%%") }
