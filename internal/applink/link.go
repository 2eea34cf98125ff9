package applink

import (
	"errors"
	"fmt"
	"net/url"
)

// Path returns the in-app route for a payload.
func Path(p Payload) string { return p.path() }

// BuildLink resolves the payload path against origin and returns the
// universal link. The result always uses the https scheme.
func BuildLink(origin string, p Payload) (string, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return "", &LinkBuildError{Origin: origin, Err: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return "", &LinkBuildError{Origin: origin, Err: errors.New("not an absolute URL")}
	}
	ref, err := url.Parse(Path(p))
	if err != nil {
		return "", &LinkBuildError{Origin: origin, Err: fmt.Errorf("path: %w", err)}
	}
	// The path is always absolute, so only the origin's host survives.
	// Dot segments in user values are kept verbatim rather than resolved.
	link := url.URL{
		Scheme:   "https",
		Host:     base.Host,
		Path:     ref.Path,
		RawPath:  ref.RawPath,
		RawQuery: ref.RawQuery,
	}
	return link.String(), nil
}
