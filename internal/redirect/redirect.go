package redirect

import (
	"net/url"
	"strings"

	"io-link/internal/campaign"
)

// Targets are the fallback URLs. Built once from config and shared read-only.
type Targets struct {
	Default   string
	OnIOS     string // optional
	OnAndroid string // optional
}

// Resolve picks the outbound URL for a platform. Campaign fields are
// appended only to the platform's own override; without an override the
// default URL is returned untouched.
func Resolve(p Platform, t Targets, c *campaign.Attribution) string {
	switch p {
	case PlatformAndroid:
		if t.OnAndroid == "" {
			return t.Default
		}
		if c != nil && c.Android != nil {
			return withParams(t.OnAndroid, c.Android.Params())
		}
		return t.OnAndroid
	case PlatformIOS:
		if t.OnIOS == "" {
			return t.Default
		}
		if c != nil && c.IOS != nil {
			return withParams(t.OnIOS, c.IOS.Params())
		}
		return t.OnIOS
	}
	return t.Default
}

// withParams keeps the URL's existing query pairs in order, drops any that
// collide with params, then appends params in the given order.
func withParams(raw string, params []campaign.Param) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	replaced := make(map[string]bool, len(params))
	for _, p := range params {
		replaced[p.Key] = true
	}

	var pairs []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil && replaced[k] {
			continue
		}
		pairs = append(pairs, pair)
	}
	for _, p := range params {
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	u.RawQuery = strings.Join(pairs, "&")
	return u.String()
}
