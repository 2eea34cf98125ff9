package redirect

import "strings"

type Platform string

const (
	PlatformIOS          Platform = "ios"
	PlatformAndroid      Platform = "android"
	PlatformUnclassified Platform = "unclassified"
)

// Classify maps a User-Agent to a mobile platform. iPhone wins over
// Android; Android tablets and desktop builds lack "Mobile" and stay
// unclassified.
func Classify(ua string) Platform {
	switch {
	case strings.Contains(ua, "iPhone"):
		return PlatformIOS
	case strings.Contains(ua, "Android") && strings.Contains(ua, "Mobile"):
		return PlatformAndroid
	default:
		return PlatformUnclassified
	}
}
