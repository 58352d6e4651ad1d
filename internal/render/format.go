package render

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nfrund/folio/internal/domain"
)

// FallbackLanguageColor is used for languages missing from the color table.
const FallbackLanguageColor = "#6b7280"

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C#":         "#178600",
	"C++":        "#f34b7d",
	"PHP":        "#4F5D95",
	"Ruby":       "#701516",
	"Go":         "#00ADD8",
	"Swift":      "#ffac45",
	"Kotlin":     "#A97BFF",
	"Rust":       "#dea584",
	"Dart":       "#00B4AB",
}

// LanguageColor returns the badge color for a repository language.
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return FallbackLanguageColor
}

// Initials takes the first letter of the first name token and, when there is
// more than one token, the first letter of the last one, uppercased.
func Initials(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	initials := firstRune(tokens[0])
	if len(tokens) > 1 {
		initials += firstRune(tokens[len(tokens)-1])
	}
	return strings.ToUpper(initials)
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// SplitFeatured returns the first n repositories and the rest, keeping order.
func SplitFeatured(repos []domain.Repository, n int) (featured, pool []domain.Repository) {
	n = max(0, min(n, len(repos)))
	return repos[:n], repos[n:]
}

// TickerDuplicates returns how many times a pool of poolLen cards must repeat
// so the scrolling track covers the viewport plus two cards and can loop. An
// empty pool needs no repetitions.
func TickerDuplicates(poolLen, viewportWidth, cardWidth int) int {
	if poolLen <= 0 {
		return 0
	}
	if cardWidth <= 0 {
		cardWidth = DefaultCardWidth
	}
	visible := ceilDiv(max(viewportWidth, 0), cardWidth) + 2
	return max(2, ceilDiv(visible, poolLen))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

const day = 24 * time.Hour

// RelativeDate describes how long ago t was, relative to now, in the words of m.
// Day counts round up, weeks/months/years round down.
func RelativeDate(t, now time.Time, m Messages) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int((diff + day - 1) / day)

	switch {
	case days < 1:
		return m.Today
	case days == 1:
		return m.Yesterday
	case days < 7:
		return m.plural(days, m.Day, m.Days)
	case days < 30:
		return m.plural(days/7, m.Week, m.Weeks)
	case days < 365:
		return m.plural(days/30, m.Month, m.Months)
	default:
		return m.plural(days/365, m.Year, m.Years)
	}
}
