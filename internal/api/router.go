package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"io-link/internal/observability"
)

func Router(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Measure)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log.Logger)...)
	r.Use(middleware.Recoverer)
	r.Use(SecureHeaders)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/health", h.Health)
	r.Get("/.well-known/apple-app-site-association", h.AppleAppSiteAssociation)
	r.Get("/.well-known/assetlinks.json", h.AssetLinks)
	r.Group(func(r chi.Router) {
		r.Use(AllowAnyOrigin)
		r.Get("/qrcode.png", h.QRCode)
		r.Get("/open", h.Open)
	})
	r.Handle("/metrics", observability.MetricsHandler())

	// TODO: drop once the app stops emitting /main/wallet external links.
	r.HandleFunc("/main/wallet", h.WalletFix)
	r.HandleFunc("/*", h.Fallback)
	return r
}
