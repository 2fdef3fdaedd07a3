package fileutil

import (
	"net/url"
	"path"
	"strings"
)

// Join is a url.URL scheme-safe join method. This allows for joining of local
// files as well as URI's.
func Join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	u, err := url.Parse(parts[0])
	if err != nil || u.Scheme == "" {
		return path.Join(parts...)
	}

	rest := append([]string{u.Path}, parts[1:]...)
	u.Path = path.Join(rest...)
	return u.String()
}

// Base is a url.URL scheme-safe Base method.
func Base(p string) string {
	if i := strings.Index(p, "//"); i > -1 {
		p = p[i+2:]
	}
	return path.Base(p)
}

// Dir is a url.URL scheme-safe Dir method.
func Dir(dir string) string {
	if i := strings.Index(dir, "//"); i > -1 {
		base := dir[:i+2]
		parts := strings.Split(dir[i+2:], "/")
		if len(parts) < 2 {
			return base
		}
		parts = parts[:len(parts)-1]
		return Join(append([]string{base}, parts...)...)
	}
	return path.Dir(dir)
}
