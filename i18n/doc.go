// Package i18n holds the localized prompts and command messages.
//
// Catalogs are YAML files under locales/, one per locale, embedded in the
// binary. en-US is the base locale; keys missing from another locale fall
// back to it, and keys missing everywhere print as themselves.
//
//	p := i18n.Default().Printer("zh")
//	p.Prompt("prompt.circle.center") // "圆心"
package i18n
