package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"io-link/internal/redirect"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration (file + env overrides)
type Config struct {
	Environment string `mapstructure:"environment"`
	Port        int    `mapstructure:"port"`
	LogLevel    string `mapstructure:"log_level"`
	StaticDir   string `mapstructure:"static_dir"`

	IOS     *IOS     `mapstructure:"-"`
	Android *Android `mapstructure:"-"`

	FallbackURL struct {
		Default   string `mapstructure:"default"`
		OnIOS     string `mapstructure:"on_ios"`
		OnAndroid string `mapstructure:"on_android"`
	} `mapstructure:"fallback"`
}

type IOS struct {
	AppID    string
	BundleID string
}

// FullAppID is the team-qualified identifier used in the site association.
func (i IOS) FullAppID() string { return i.AppID + "." + i.BundleID }

type Android struct {
	PackageName            string
	SHA256CertFingerprints []string
}

// ConfigError collects every problem found while loading.
type ConfigError struct {
	Issues []string
}

func (e *ConfigError) Error() string {
	return "invalid config: " + strings.Join(e.Issues, "; ")
}

var envBindings = map[string][]string{
	"environment":                      {"APP_ENV", "NODE_ENV"},
	"port":                             {"PORT"},
	"log_level":                        {"LOG_LEVEL"},
	"static_dir":                       {"STATIC_DIR"},
	"ios.app_id":                       {"IOS_APP_ID"},
	"ios.bundle_id":                    {"IOS_BUNDLE_ID"},
	"android.package_name":             {"ANDROID_PACKAGE_NAME"},
	"android.sha256_cert_fingerprints": {"ANDROID_SHA_256_CERT_FINGERPRINTS"},
	"fallback.default":                 {"FALLBACK_URL"},
	"fallback.on_ios":                  {"FALLBACK_URL_ON_IOS"},
	"fallback.on_android":              {"FALLBACK_URL_ON_ANDROID"},
}

// Load reads configs/application.yaml (optional), a .env file (optional)
// and the process environment, which wins over both.
func Load() (Config, error) {
	_ = godotenv.Load() // optional; real env is never overwritten

	v := viper.New()
	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, &ConfigError{Issues: []string{fmt.Sprintf("read config file: %v", err)}}
		}
	}
	return FromViper(v)
}

// FromViper binds the environment onto v and validates the result.
func FromViper(v *viper.Viper) (Config, error) {
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	v.SetDefault("environment", EnvProduction)
	v.SetDefault("port", 3000)
	v.SetDefault("static_dir", "public")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &ConfigError{Issues: []string{fmt.Sprintf("unable to decode config: %v", err)}}
	}

	var issues []string
	cfg.IOS, issues = iosFrom(v, issues)
	cfg.Android, issues = androidFrom(v, issues)
	issues = append(issues, validate(&cfg)...)
	if len(issues) > 0 {
		return Config{}, &ConfigError{Issues: issues}
	}
	return cfg, nil
}

func iosFrom(v *viper.Viper, issues []string) (*IOS, []string) {
	appID, bundleID := v.GetString("ios.app_id"), v.GetString("ios.bundle_id")
	switch {
	case appID == "" && bundleID == "":
		return nil, issues
	case appID == "" || bundleID == "":
		return nil, append(issues, "ios: IOS_APP_ID and IOS_BUNDLE_ID must be set together")
	}
	return &IOS{AppID: appID, BundleID: bundleID}, issues
}

func androidFrom(v *viper.Viper, issues []string) (*Android, []string) {
	pkg := v.GetString("android.package_name")
	var fps []string
	for _, fp := range strings.Split(v.GetString("android.sha256_cert_fingerprints"), ",") {
		if fp = strings.TrimSpace(fp); fp != "" {
			fps = append(fps, fp)
		}
	}
	switch {
	case pkg == "" && len(fps) == 0:
		return nil, issues
	case pkg == "" || len(fps) == 0:
		return nil, append(issues, "android: ANDROID_PACKAGE_NAME and ANDROID_SHA_256_CERT_FINGERPRINTS must be set together")
	}
	return &Android{PackageName: pkg, SHA256CertFingerprints: fps}, issues
}

func validate(c *Config) []string {
	var issues []string
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		issues = append(issues, fmt.Sprintf("environment: must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment))
	}
	if c.Port < 1024 || c.Port > 49151 {
		issues = append(issues, fmt.Sprintf("port: must be between 1024 and 49151, got %d", c.Port))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		issues = append(issues, fmt.Sprintf("log_level: unknown level %q", c.LogLevel))
	}
	if c.FallbackURL.Default == "" {
		issues = append(issues, "fallback.default: FALLBACK_URL is required")
	} else if !isAbsoluteURL(c.FallbackURL.Default) {
		issues = append(issues, fmt.Sprintf("fallback.default: %q is not an absolute URL", c.FallbackURL.Default))
	}
	if c.FallbackURL.OnIOS != "" && !isAbsoluteURL(c.FallbackURL.OnIOS) {
		issues = append(issues, fmt.Sprintf("fallback.on_ios: %q is not an absolute URL", c.FallbackURL.OnIOS))
	}
	if c.FallbackURL.OnAndroid != "" && !isAbsoluteURL(c.FallbackURL.OnAndroid) {
		issues = append(issues, fmt.Sprintf("fallback.on_android: %q is not an absolute URL", c.FallbackURL.OnAndroid))
	}
	return issues
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (c Config) Addr() string { return fmt.Sprintf("0.0.0.0:%d", c.Port) }

func (c Config) Fallback() redirect.Targets {
	return redirect.Targets{
		Default:   c.FallbackURL.Default,
		OnIOS:     c.FallbackURL.OnIOS,
		OnAndroid: c.FallbackURL.OnAndroid,
	}
}
