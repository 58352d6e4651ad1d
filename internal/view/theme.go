package view

import (
	"fmt"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Theme values. ThemeAuto leaves the choice to the browser's media query.
const (
	ThemeAuto  = ""
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	prefsSessionName = "folio-prefs"
	prefsKeyTheme    = "theme"

	// HeaderPrefersColorScheme is the client hint carrying the visitor's
	// preferred color scheme. The server asks for it with Accept-CH.
	HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"
)

// Theme resolves the theme for this request: an explicit choice stored in the
// session wins over the client hint. Without either it returns ThemeAuto.
func Theme(c echo.Context) string {
	if sess, err := session.Get(prefsSessionName, c); err == nil {
		if theme, ok := sess.Values[prefsKeyTheme].(string); ok && validTheme(theme) && theme != ThemeAuto {
			return theme
		}
	}

	switch strings.Trim(c.Request().Header.Get(HeaderPrefersColorScheme), `" `) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeAuto
	}
}

// SetTheme stores an explicit theme choice in the visitor's session.
// ThemeAuto clears it.
func SetTheme(c echo.Context, theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("unknown theme %q", theme)
	}
	sess, err := session.Get(prefsSessionName, c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if theme == ThemeAuto {
		delete(sess.Values, prefsKeyTheme)
	} else {
		sess.Values[prefsKeyTheme] = theme
	}
	return sess.Save(c.Request(), c.Response())
}

// NextTheme is the theme the toggle button switches to.
func NextTheme(current string) string {
	if current == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// themeClass maps a theme to the body class the stylesheet keys on.
func themeClass(theme string) string {
	switch theme {
	case ThemeDark:
		return "dark-mode"
	case ThemeLight:
		return "light-mode"
	default:
		return ""
	}
}

func validTheme(theme string) bool {
	return theme == ThemeAuto || theme == ThemeLight || theme == ThemeDark
}
