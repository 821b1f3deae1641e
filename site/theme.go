package site

import (
	"net/http"
	"time"
)

// ThemeCookie stores the visitor's colour scheme.
const ThemeCookie = "theme"

// Theme is the visitor's colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a cookie value to a Theme, defaulting to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// BodyClass is the class the layout puts on <body>.
func (t Theme) BodyClass() string {
	if t == ThemeDark {
		return "dark-mode"
	}
	return ""
}

func themeCookie(t Theme) *http.Cookie {
	return &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
}
