package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/rasenga223/luminicad/command"
)

// BaseLocale is the locale every catalog falls back to.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle is a set of locale catalogs.
type Bundle struct {
	locales  map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	printers sync.Map // language.Tag -> *Printer
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the embedded bundle. It panics if the embedded catalogs
// are malformed.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := LoadFromFS(embeddedFS)
		if err != nil {
			panic(err)
		}
		defaultBundle = b
	})
	return defaultBundle
}

// LoadFromFS loads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := b.add(path, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	if want := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".yaml"); locale != want {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", path, locale, want)
	}
	if _, exists := b.locales[locale]; exists {
		return fmt.Errorf("catalog %s: locale %q already defined", path, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}
	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		k := strings.TrimSpace(key)
		if k == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		messages[k] = value
	}
	b.locales[locale] = messages
	return nil
}

// build registers every message with an x/text catalog. Keys missing from
// a locale are filled from the base locale.
func (b *Bundle) build() error {
	base := b.locales[BaseLocale]
	b.builder = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))

	// The base locale goes first so the matcher falls back to it.
	locales := []string{BaseLocale}
	for _, l := range b.Locales() {
		if l != BaseLocale {
			locales = append(locales, l)
		}
	}
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		b.tags = append(b.tags, tag)
		messages := b.locales[locale]
		for key, value := range base {
			if v, ok := messages[key]; ok {
				value = v
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("catalog %s: key %q: %w", locale, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// Locales returns the available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns one raw message with base-locale fallback.
func (b *Bundle) Message(locale, key string) (string, bool) {
	key = strings.TrimSpace(key)
	if m, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	v, ok := b.locales[BaseLocale][key]
	return v, ok
}

// Match returns the supported tag closest to the requested locale.
func (b *Bundle) Match(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return b.tags[0]
	}
	_, i, _ := b.matcher.Match(tag)
	return b.tags[i]
}

// Printer returns the printer for the locale closest to locale.
func (b *Bundle) Printer(locale string) *Printer {
	tag := b.Match(locale)
	if p, ok := b.printers.Load(tag); ok {
		return p.(*Printer)
	}
	p := &Printer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
	actual, _ := b.printers.LoadOrStore(tag, p)
	return actual.(*Printer)
}

// Printer formats messages for one locale.
type Printer struct {
	tag     language.Tag
	printer *message.Printer
}

// Locale returns the printer's language tag.
func (p *Printer) Locale() language.Tag { return p.tag }

// Prompt returns the text for a prompt key. Unknown keys print as is.
func (p *Printer) Prompt(key string) string {
	return p.printer.Sprintf(key)
}

// Sprintf formats the message for key with args.
func (p *Printer) Sprintf(key string, args ...any) string {
	return p.printer.Sprintf(key, args...)
}

// Error returns the localized message for an error returned by the named
// command.
func (p *Printer) Error(name string, err error) string {
	var ce *command.Error
	if errors.As(err, &ce) && ce.Command != "" {
		name = ce.Command
	}
	return p.printer.Sprintf(string(command.CodeOf(err)), name)
}
