package mpris

import (
	"net/url"
	"path/filepath"
)

// fileURIPath returns the local path of a file:// URI or a bare path.
func fileURIPath(uri string) (string, bool) {
	if filepath.IsAbs(uri) {
		return uri, true
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return u.Path, true
}
