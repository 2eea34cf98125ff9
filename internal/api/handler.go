package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/hlog"

	"io-link/internal/applink"
	"io-link/internal/campaign"
	"io-link/internal/config"
	"io-link/internal/observability"
	"io-link/internal/qrcode"
	"io-link/internal/redirect"
)

type Handler struct {
	aasa       *applink.AppleAppSiteAssociation
	assetLinks []applink.AssetLink
	fallback   redirect.Targets
	staticDir  string
	qr         qrcode.Encoder
}

// NewHandler precomputes the manifests; cfg is not retained.
func NewHandler(cfg config.Config, qr qrcode.Encoder) *Handler {
	h := &Handler{
		fallback:  cfg.Fallback(),
		staticDir: cfg.StaticDir,
		qr:        qr,
	}
	if cfg.IOS != nil {
		aasa := applink.AppleAppSiteAssociationFor(cfg.IOS.FullAppID())
		h.aasa = &aasa
	}
	if cfg.Android != nil {
		h.assetLinks = applink.AssetLinksFor(cfg.Android.PackageName, cfg.Android.SHA256CertFingerprints...)
	}
	return h
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AppleAppSiteAssociation(w http.ResponseWriter, _ *http.Request) {
	if h.aasa == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.aasa)
}

func (h *Handler) AssetLinks(w http.ResponseWriter, _ *http.Request) {
	if h.assetLinks == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.assetLinks)
}

func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	link, err := h.link(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	opts, err := qrcode.ParseOptions(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.qr.Encode(&buf, link, opts); err != nil {
		h.fail(w, r, err)
		return
	}
	hlog.FromRequest(r).Debug().Int("width", opts.Width).Int("bytes", buf.Len()).Msg("qr code generated")

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	link, err := h.link(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

// WalletFix sends the legacy wallet link to the messages screen, keeping
// the query string.
func (h *Handler) WalletFix(w http.ResponseWriter, r *http.Request) {
	host := r.Header.Get("X-Original-Host")
	if host == "" {
		host = r.Host
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	target := scheme + "://" + host + "/main/messages"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	hlog.FromRequest(r).Debug().Str("url", target).Msg("redirecting wallet link to messages")
	http.Redirect(w, r, target, http.StatusFound)
}

// Fallback serves a static file when one matches, otherwise redirects by
// User-Agent to the configured store or default URL.
func (h *Handler) Fallback(w http.ResponseWriter, r *http.Request) {
	if h.serveStatic(w, r) {
		return
	}
	platform := redirect.Classify(r.UserAgent())
	target := redirect.Resolve(platform, h.fallback, campaign.Maybe(r.URL.Query()))
	observability.Redirects.WithLabelValues(string(platform)).Inc()
	hlog.FromRequest(r).Debug().Str("platform", string(platform)).Str("url", target).Msg("redirecting")
	http.Redirect(w, r, target, http.StatusFound)
}

// link validates the query and builds the universal link for this host.
func (h *Handler) link(r *http.Request) (string, error) {
	payload, err := applink.ParsePayload(r.URL.Query())
	if err != nil {
		return "", err
	}
	logger := hlog.FromRequest(r)
	logger.Debug().Str("feature", string(payload.Feature())).Interface("payload", payload).Msg("parsed payload")

	link, err := applink.BuildLink(origin(r), payload)
	if err != nil {
		return "", err
	}
	observability.LinksBuilt.WithLabelValues(string(payload.Feature())).Inc()
	logger.Debug().Str("link", link).Msg("link created")
	return link, nil
}

func origin(r *http.Request) string {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return "https://" + host
}

// fail logs err and answers an empty 404; nothing about the cause leaks.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *applink.ValidationError
		lerr *applink.LinkBuildError
		kind = observability.ErrQRCode
	)
	event := hlog.FromRequest(r).Error().Err(err)
	switch {
	case errors.As(err, &verr):
		kind = observability.ErrValidation
		event = event.Str("field", verr.Field)
	case errors.As(err, &lerr):
		kind = observability.ErrLinkBuild
		event = event.Str("origin", lerr.Origin)
	}
	observability.RequestErrors.WithLabelValues(kind).Inc()
	event.Str("type", kind).Msg("invalid input")
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if h.staticDir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		return false
	}
	name := filepath.Join(h.staticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	fi, err := os.Stat(name)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	http.ServeFile(w, r, name)
	return true
}
