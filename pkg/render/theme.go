package render

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the resolved theming data a renderer consumes: token values
// plus the CSS custom properties derived from them.
type ThemeConfig struct {
	Theme   string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

// ThemeFromSelector resolves a theme/variant through a go-theme selector and
// converts the selection into renderer-facing configuration.
func ThemeFromSelector(selector theme.ThemeSelector, name, variant string) (*ThemeConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	return ThemeFromSelection(selection), nil
}

// ThemeFromSelection flattens a go-theme selection: manifest tokens are
// overlaid with the chosen variant's tokens, and every token also becomes a
// "--token" CSS variable.
func ThemeFromSelection(selection *theme.Selection) *ThemeConfig {
	if selection == nil {
		return nil
	}

	cfg := &ThemeConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  make(map[string]string),
		CSSVars: make(map[string]string),
	}

	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				cfg.Tokens[key] = value
			}
		}
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	return cfg
}
