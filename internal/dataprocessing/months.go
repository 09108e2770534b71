package dataprocessing

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"
)

// Month-name tables for the supported report languages. Names are
// explicit so a report run produces identical month names on every
// host, independent of the process locale.
var monthNames = map[language.Tag][12]string{
	language.Spanish: {
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	},
	language.English: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var supportedLanguages = []language.Tag{language.Spanish, language.English}

// MonthNamer resolves calendar month numbers to full month names in a
// fixed language.
type MonthNamer struct {
	names [12]string
	tag   language.Tag
}

// NewMonthNamer builds a namer for the requested BCP 47 language tag.
// An unavailable language falls back to Spanish with a warning; it is
// never fatal.
func NewMonthNamer(lang string, logger *slog.Logger) *MonthNamer {
	if logger == nil {
		logger = slog.Default()
	}

	matcher := language.NewMatcher(supportedLanguages)
	tag, _, confidence := matcher.Match(language.Make(lang))
	// Matcher returns a derived tag; snap back to the table key.
	base, _ := tag.Base()
	resolved := language.Spanish
	if base.String() == "en" {
		resolved = language.English
	}

	if confidence == language.No {
		logger.Warn("month-name language unavailable, falling back",
			slog.String("requested", lang),
			slog.String("fallback", resolved.String()))
	}

	return &MonthNamer{names: monthNames[resolved], tag: resolved}
}

// Name returns the full month name for m.
func (n *MonthNamer) Name(m time.Month) string {
	return n.names[int(m)-1]
}

// Language returns the resolved language tag.
func (n *MonthNamer) Language() string {
	return n.tag.String()
}
