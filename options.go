package luminicad

import (
	"github.com/rasenga223/luminicad/config"
	"github.com/rasenga223/luminicad/i18n"
	"github.com/rasenga223/luminicad/kernel"
)

// Option configures an App during creation.
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	app := luminicad.New(luminicad.WithConfig(cfg), luminicad.WithNotifier(status))
type Option func(*appOptions)

type appOptions struct {
	cfg      config.Config
	locale   string
	kernel   kernel.Kernel
	notifier Notifier
	bundle   *i18n.Bundle
}

func defaultOptions() appOptions {
	return appOptions{
		cfg:    config.Default(),
		kernel: kernel.NewAnalytic(),
	}
}

// WithConfig applies loaded settings: locale, history limit, snapping,
// viewport and theme.
func WithConfig(cfg config.Config) Option {
	return func(o *appOptions) {
		o.cfg = cfg
	}
}

// WithLocale overrides the configured locale.
func WithLocale(locale string) Option {
	return func(o *appOptions) {
		o.locale = locale
	}
}

// WithKernel sets the geometry kernel. The default is kernel.NewAnalytic.
func WithKernel(k kernel.Kernel) Option {
	return func(o *appOptions) {
		if k != nil {
			o.kernel = k
		}
	}
}

// WithNotifier receives localized command lifecycle notices.
func WithNotifier(n Notifier) Option {
	return func(o *appOptions) {
		o.notifier = n
	}
}

// WithBundle replaces the embedded message catalogs.
func WithBundle(b *i18n.Bundle) Option {
	return func(o *appOptions) {
		o.bundle = b
	}
}
