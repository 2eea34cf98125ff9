package config

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io-link/internal/redirect"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("FALLBACK_URL", "https://io.italia.it")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Nil(t, cfg.IOS)
	assert.Nil(t, cfg.Android)
	assert.Equal(t, redirect.Targets{Default: "https://io.italia.it"}, cfg.Fallback())
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestFromViper_Full(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	t.Setenv("PORT", "8080")
	t.Setenv("IOS_APP_ID", "TEAMID")
	t.Setenv("IOS_BUNDLE_ID", "it.pagopa.io.app")
	t.Setenv("ANDROID_PACKAGE_NAME", "it.pagopa.io.app")
	t.Setenv("ANDROID_SHA_256_CERT_FINGERPRINTS", "AA:01, BB:02,,")
	t.Setenv("FALLBACK_URL", "https://io.italia.it")
	t.Setenv("FALLBACK_URL_ON_IOS", "https://apps.apple.com/app/id1501681835")
	t.Setenv("FALLBACK_URL_ON_ANDROID", "https://play.google.com/store/apps/details?id=it.pagopa.io.app")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	require.NotNil(t, cfg.IOS)
	assert.Equal(t, "TEAMID.it.pagopa.io.app", cfg.IOS.FullAppID())
	require.NotNil(t, cfg.Android)
	assert.Equal(t, "it.pagopa.io.app", cfg.Android.PackageName)
	assert.Equal(t, []string{"AA:01", "BB:02"}, cfg.Android.SHA256CertFingerprints)
	assert.Equal(t, redirect.Targets{
		Default:   "https://io.italia.it",
		OnIOS:     "https://apps.apple.com/app/id1501681835",
		OnAndroid: "https://play.google.com/store/apps/details?id=it.pagopa.io.app",
	}, cfg.Fallback())
}

func TestFromViper_AppEnvWinsOverNodeEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("FALLBACK_URL", "https://io.italia.it")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantIssue string
	}{
		{"missing fallback", map[string]string{}, "FALLBACK_URL is required"},
		{"relative fallback", map[string]string{"FALLBACK_URL": "FALLBACK"}, "fallback.default"},
		{"bad ios override", map[string]string{"FALLBACK_URL": "https://a.it", "FALLBACK_URL_ON_IOS": "store"}, "fallback.on_ios"},
		{"bad android override", map[string]string{"FALLBACK_URL": "https://a.it", "FALLBACK_URL_ON_ANDROID": "/store"}, "fallback.on_android"},
		{"port too low", map[string]string{"FALLBACK_URL": "https://a.it", "PORT": "80"}, "port"},
		{"port too high", map[string]string{"FALLBACK_URL": "https://a.it", "PORT": "49152"}, "port"},
		{"port not a number", map[string]string{"FALLBACK_URL": "https://a.it", "PORT": "http"}, "decode"},
		{"unknown environment", map[string]string{"FALLBACK_URL": "https://a.it", "NODE_ENV": "test"}, "environment"},
		{"unknown log level", map[string]string{"FALLBACK_URL": "https://a.it", "LOG_LEVEL": "loud"}, "log_level"},
		{"half ios", map[string]string{"FALLBACK_URL": "https://a.it", "IOS_APP_ID": "TEAM"}, "ios:"},
		{"half android", map[string]string{"FALLBACK_URL": "https://a.it", "ANDROID_PACKAGE_NAME": "pkg"}, "android:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromViper(viper.New())
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "expected ConfigError, got %v", err)
			assert.Contains(t, cerr.Error(), tt.wantIssue)
		})
	}
}

func TestFromViper_CollectsAllIssues(t *testing.T) {
	t.Setenv("PORT", "1")
	t.Setenv("NODE_ENV", "staging")

	_, err := FromViper(viper.New())
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Len(t, cerr.Issues, 3)
}

func TestLoad_WithoutConfigFile(t *testing.T) {
	t.Setenv("FALLBACK_URL", "https://io.italia.it")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://io.italia.it", cfg.FallbackURL.Default)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(EnvDevelopment, ""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(EnvProduction, ""))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(EnvDevelopment, "WARN"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel(EnvProduction, "debug"))
}
