package applink

import (
	"net/url"
	"slices"
)

// Feature names a deep-link target inside the app.
type Feature string

const (
	FeatureFirma Feature = "firma"
	FeatureIDPay Feature = "idpay"
)

// Query keys read by the payload parsers.
const (
	KeyFeature         = "feat"
	KeySignatureReq    = "srid"
	KeyTransactionCode = "trxcode"
)

// Payload is the closed set of validated deep-link payloads.
// Only types in this package can implement it; every variant must
// provide its in-app path, so a new feature cannot be added without one.
type Payload interface {
	Feature() Feature
	path() string
}

// Firma targets the signature flow.
type Firma struct {
	SignatureRequestID string `json:"signatureRequestId"`
}

// IDPay targets the payment authorization flow.
type IDPay struct {
	TransactionCode string `json:"transactionCode"`
}

func (Firma) Feature() Feature { return FeatureFirma }
func (IDPay) Feature() Feature { return FeatureIDPay }

func (p Firma) path() string {
	return "/fci/main?signatureRequestId=" + url.QueryEscape(p.SignatureRequestID)
}

func (p IDPay) path() string {
	return "/idpay/auth/" + url.PathEscape(p.TransactionCode)
}

type parser struct {
	required []string
	build    func(q url.Values) Payload
}

// registry is keyed by the explicit "feat" discriminator. Required field
// names must not be shared between features.
var registry = map[Feature]parser{
	FeatureFirma: {
		required: []string{KeySignatureReq},
		build: func(q url.Values) Payload {
			return Firma{SignatureRequestID: q.Get(KeySignatureReq)}
		},
	},
	FeatureIDPay: {
		required: []string{KeyTransactionCode},
		build: func(q url.Values) Payload {
			return IDPay{TransactionCode: q.Get(KeyTransactionCode)}
		},
	},
}

// Features lists the registered features in a stable order.
func Features() []Feature {
	out := make([]Feature, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ParsePayload validates the query against the feature registry.
// Unknown keys are ignored.
func ParsePayload(q url.Values) (Payload, error) {
	feat := q.Get(KeyFeature)
	if feat == "" {
		return nil, missing(KeyFeature)
	}
	p, ok := registry[Feature(feat)]
	if !ok {
		return nil, &ValidationError{Field: KeyFeature, Reason: "unsupported feature " + feat}
	}
	for _, key := range p.required {
		if q.Get(key) == "" {
			return nil, missing(key)
		}
	}
	return p.build(q), nil
}
