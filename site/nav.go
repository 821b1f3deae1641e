package site

import "strings"

// NavLink is one entry of the main navigation.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

var navigation = []NavLink{
	{Label: "Home", Href: "/"},
	{Label: "Destinations", Href: "/destinations"},
	{Label: "Booking", Href: "/booking"},
	{Label: "Contact", Href: "/contact"},
}

// Navigation returns the main navigation with the link for path marked
// active. A trailing slash is ignored.
func Navigation(path string) []NavLink {
	current := strings.TrimSuffix(path, "/")
	if current == "" {
		current = "/"
	}
	links := make([]NavLink, len(navigation))
	for i, l := range navigation {
		l.Active = l.Href == current
		links[i] = l
	}
	return links
}
