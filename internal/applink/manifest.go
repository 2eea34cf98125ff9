package applink

// AppleAppSiteAssociation is served on /.well-known/apple-app-site-association.
type AppleAppSiteAssociation struct {
	AppLinks AppLinks `json:"applinks"`
}

type AppLinks struct {
	Details []AppLinkDetail `json:"details"`
}

type AppLinkDetail struct {
	AppID      string              `json:"appID"`
	AppIDs     []string            `json:"appIDs"`
	Paths      []string            `json:"paths"`
	Components []map[string]string `json:"components"`
}

// AssetLink is one statement of /.well-known/assetlinks.json.
type AssetLink struct {
	Relation []string        `json:"relation"`
	Target   AssetLinkTarget `json:"target"`
}

type AssetLinkTarget struct {
	Namespace              string   `json:"namespace"`
	PackageName            string   `json:"package_name"`
	SHA256CertFingerprints []string `json:"sha256_cert_fingerprints"`
}

const handleAllURLs = "delegate_permission/common.handle_all_urls"

// AppleAppSiteAssociationFor grants every path to each fully qualified
// app ID (<team id>.<bundle id>).
func AppleAppSiteAssociationFor(appIDs ...string) AppleAppSiteAssociation {
	details := make([]AppLinkDetail, 0, len(appIDs))
	for _, id := range appIDs {
		details = append(details, AppLinkDetail{
			AppID:      id,
			AppIDs:     appIDs,
			Paths:      []string{"*"},
			Components: []map[string]string{{"/": "*"}},
		})
	}
	return AppleAppSiteAssociation{AppLinks: AppLinks{Details: details}}
}

// AssetLinksFor delegates URL handling to an Android package signed by any
// of the given certificate fingerprints.
func AssetLinksFor(packageName string, fingerprints ...string) []AssetLink {
	if fingerprints == nil {
		fingerprints = []string{}
	}
	return []AssetLink{{
		Relation: []string{handleAllURLs},
		Target: AssetLinkTarget{
			Namespace:              "android_app",
			PackageName:            packageName,
			SHA256CertFingerprints: fingerprints,
		},
	}}
}
