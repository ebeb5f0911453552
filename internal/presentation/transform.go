package presentation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Config controls how the resolved display string is transformed before it
// reaches a consumer.
type Config struct {
	AllCaps bool
	Locale  string // BCP 47 tag, e.g. "en-US"; empty means locale-neutral
}

// Transformer normalizes the display string to a single line and optionally
// upper-cases it with locale-aware rules (Turkish dotless-i and friends).
type Transformer struct {
	allCaps bool
	caser   cases.Caser
}

var singleLineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// New builds a transformer. An unparseable locale is an error rather than a
// silent fallback so misconfiguration surfaces at startup.
func New(cfg Config) (*Transformer, error) {
	tag := language.Und
	if cfg.Locale != "" {
		parsed, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid presentation locale %q: %w", cfg.Locale, err)
		}
		tag = parsed
	}
	return &Transformer{
		allCaps: cfg.AllCaps,
		caser:   cases.Upper(tag),
	}, nil
}

// Apply transforms one display string. The underlying caser is stateful, so
// Apply is not safe for concurrent use; callers serialize it alongside the
// recompute itself.
func (t *Transformer) Apply(s string) string {
	s = singleLineReplacer.Replace(s)
	if t.allCaps {
		s = t.caser.String(s)
	}
	return s
}
