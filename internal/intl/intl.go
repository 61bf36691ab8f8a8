// Package intl holds the embedded message catalogs and resolves a
// Translator for a locale or an Accept-Language header.
package intl

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported lists the catalog languages; the first is the default.
var Supported = []language.Tag{language.English, language.Chinese}

var matcher = language.NewMatcher(Supported)

// Bundle is the loaded message catalog.
type Bundle struct {
	b *i18n.Bundle
}

// Load parses every embedded catalog.
func Load() (*Bundle, error) {
	b := i18n.NewBundle(language.English)
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}
	for _, e := range entries {
		raw, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(raw, e.Name()); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", e.Name(), err)
		}
	}
	return &Bundle{b: b}, nil
}

// MustLoad is Load for process start-up, where a broken catalog is fatal.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Match picks the best supported language for the given preferences,
// e.g. the configured locale or an Accept-Language header value.
func Match(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// Translator localizes message ids into one language.
type Translator struct {
	tag language.Tag
	l   *i18n.Localizer
}

// Translator returns a Translator for the best match of prefs.
func (b *Bundle) Translator(prefs ...string) *Translator {
	tag := Match(prefs...)
	return &Translator{tag: tag, l: i18n.NewLocalizer(b.b, tag.String())}
}

// Lang returns the BCP 47 tag, e.g. for <html lang>.
func (t *Translator) Lang() string { return t.tag.String() }

// T returns the message for id, or id itself when it is unknown.
func (t *Translator) T(id string) string {
	msg, err := t.l.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return id
	}
	return msg
}
