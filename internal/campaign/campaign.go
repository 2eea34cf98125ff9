package campaign

import (
	"errors"
	"net/url"
)

// ErrNoAttribution means neither platform bag was fully present.
var ErrNoAttribution = errors.New("no attribution data")

// Android carries Play Store referral fields.
type Android struct {
	Source   string `json:"utm_source"`
	Medium   string `json:"utm_medium"`
	Campaign string `json:"utm_campaign"`
}

// IOS carries App Store provider token, campaign token and media type.
type IOS struct {
	ProviderToken string `json:"pt"`
	CampaignToken string `json:"ct"`
	MediaType     string `json:"mt"`
}

// Attribution holds whichever bags were complete. At least one is non-nil.
type Attribution struct {
	Android *Android `json:"android,omitempty"`
	IOS     *IOS     `json:"ios,omitempty"`
}

// Param is one ordered query pair.
type Param struct {
	Key   string
	Value string
}

// Params returns the bag's fields in the order they are appended to store URLs.
func (a Android) Params() []Param {
	return []Param{
		{"utm_source", a.Source},
		{"utm_medium", a.Medium},
		{"utm_campaign", a.Campaign},
	}
}

func (i IOS) Params() []Param {
	return []Param{
		{"pt", i.ProviderToken},
		{"ct", i.CampaignToken},
		{"mt", i.MediaType},
	}
}

// Extract reads the campaign bags from the query. A bag is kept only
// when all of its fields are non-empty.
func Extract(q url.Values) (Attribution, error) {
	var a Attribution
	if v, ok := all(q, "utm_source", "utm_medium", "utm_campaign"); ok {
		a.Android = &Android{Source: v[0], Medium: v[1], Campaign: v[2]}
	}
	if v, ok := all(q, "pt", "ct", "mt"); ok {
		a.IOS = &IOS{ProviderToken: v[0], CampaignToken: v[1], MediaType: v[2]}
	}
	if a.Android == nil && a.IOS == nil {
		return Attribution{}, ErrNoAttribution
	}
	return a, nil
}

// Maybe is Extract with failure collapsed to nil.
func Maybe(q url.Values) *Attribution {
	a, err := Extract(q)
	if err != nil {
		return nil
	}
	return &a
}

func all(q url.Values, keys ...string) ([]string, bool) {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = q.Get(k)
		if out[i] == "" {
			return nil, false
		}
	}
	return out, true
}
