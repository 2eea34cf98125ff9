package qrcode

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"net/url"
	"strconv"

	qr "github.com/skip2/go-qrcode"

	"io-link/internal/applink"
)

const (
	MinWidth     = 100
	MaxWidth     = 500
	DefaultWidth = 250
	DefaultColor = "#000000ff"
)

// Options control the rendered image.
type Options struct {
	Width int
	Color color.NRGBA
}

// ParseOptions reads "width" and "color" from the query, applying defaults
// for absent keys.
func ParseOptions(q url.Values) (Options, error) {
	opts := Options{Width: DefaultWidth}

	if raw := q.Get("width"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil {
			return Options{}, &applink.ValidationError{Field: "width", Reason: "not an integer"}
		}
		if w < MinWidth || w > MaxWidth {
			return Options{}, &applink.ValidationError{Field: "width", Reason: fmt.Sprintf("must be between %d and %d", MinWidth, MaxWidth)}
		}
		opts.Width = w
	}

	raw := q.Get("color")
	if raw == "" {
		raw = DefaultColor
	}
	c, err := ParseColor(raw)
	if err != nil {
		return Options{}, &applink.ValidationError{Field: "color", Reason: err.Error()}
	}
	opts.Color = c
	return opts, nil
}

// ParseColor decodes #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	if len(s) != 9 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("expected #RRGGBBAA, got %q", s)
	}
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("expected #RRGGBBAA, got %q", s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

// Encoder renders content as an image.
type Encoder interface {
	Encode(w io.Writer, content string, opts Options) error
}

// PNGEncoder renders QR codes as PNG with an opaque white background.
type PNGEncoder struct {
	Level qr.RecoveryLevel
}

var _ Encoder = PNGEncoder{}

func NewPNGEncoder() PNGEncoder { return PNGEncoder{Level: qr.Medium} }

func (e PNGEncoder) Encode(w io.Writer, content string, opts Options) error {
	code, err := qr.New(content, e.Level)
	if err != nil {
		return fmt.Errorf("qrcode: %w", err)
	}
	code.ForegroundColor = opts.Color
	code.BackgroundColor = color.White

	var buf bytes.Buffer
	if err := code.Write(opts.Width, &buf); err != nil {
		return fmt.Errorf("qrcode: write png: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
