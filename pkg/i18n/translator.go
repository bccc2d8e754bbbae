package i18n

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator renders messages for one resolved locale. It is safe for
// concurrent use.
type Translator struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer

	mu        sync.Mutex
	templates map[string]*template.Template
}

// NewTranslator resolves the requested locale against the bundle's locales.
// Unparseable or unsupported locales resolve to BaseLocale.
func NewTranslator(b *Bundle, requested string) *Translator {
	locale := Match(b, requested)
	return &Translator{
		bundle:    b,
		locale:    locale,
		printer:   b.Printer(locale),
		templates: map[string]*template.Template{},
	}
}

// Match returns the bundle locale best matching requested.
func Match(b *Bundle, requested string) string {
	locales := b.Locales()
	tags := make([]language.Tag, 0, len(locales)+1)
	names := make([]string, 0, len(locales)+1)
	// The matcher's first tag is its default.
	tags = append(tags, language.MustParse(BaseLocale))
	names = append(names, BaseLocale)
	for _, l := range locales {
		if l == BaseLocale {
			continue
		}
		t, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		names = append(names, l)
	}

	want, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return BaseLocale
	}
	return names[idx]
}

// Locale returns the resolved locale.
func (t *Translator) Locale() string { return t.locale }

// Translate renders key with params. Unknown keys render as the key itself;
// a template that fails to render yields its raw text. Plain messages come
// from the catalog printer.
func (t *Translator) Translate(key string, params map[string]any) string {
	raw, ok := t.bundle.Message(t.locale, key)
	if !ok {
		return key
	}
	if !isTemplate(raw) {
		return t.printer.Sprintf(message.Key(key, escapeVerbs(raw)))
	}
	tmpl, err := t.template(key, raw)
	if err != nil {
		return raw
	}
	if params == nil {
		params = map[string]any{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return raw
	}
	return buf.String()
}

func (t *Translator) template(key, raw string) (*template.Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tmpl, ok := t.templates[key]; ok {
		return tmpl, nil
	}
	tmpl, err := template.New(key).
		Option("missingkey=zero").
		Funcs(template.FuncMap{
			"number": func(v any) string { return t.printer.Sprint(v) },
			"plural": func(n any, one, other string) string {
				if fmt.Sprint(n) == "1" {
					return one
				}
				return other
			},
		}).
		Parse(raw)
	if err != nil {
		return nil, err
	}
	t.templates[key] = tmpl
	return tmpl, nil
}
