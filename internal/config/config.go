package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
)

type Config struct {
	APIURL         string        // CAMPUS_API_URL (default "http://localhost:8080")
	APIBasePath    string        // CAMPUS_API_BASE_PATH (default "/api")
	Token          string        // CAMPUS_TOKEN (optional, overrides the saved session token)
	SessionFile    string        // CAMPUS_SESSION_FILE (optional, default under the user state dir)
	RequestTimeout time.Duration // CAMPUS_REQUEST_TIMEOUT (default 30s)
	LogLevel       slog.Level    // CAMPUS_LOG_LEVEL (default "warn")
	NATSURL        string        // CAMPUS_NATS_URL (optional, empty = no events)
	DatabaseURL    string        // CAMPUS_DATABASE_URL (optional, empty = no export audit log)

	// Export settings
	ExportDir        string // CAMPUS_EXPORT_DIR (default ".")
	ExportS3Bucket   string // CAMPUS_EXPORT_S3_BUCKET (enables --s3 when set)
	ExportS3Region   string // CAMPUS_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Endpoint string // CAMPUS_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Prefix   string // CAMPUS_EXPORT_S3_PREFIX (default "exports/")
}

func Load() (*Config, error) {
	c := &Config{
		APIURL:           envOrDefault("CAMPUS_API_URL", "http://localhost:8080"),
		APIBasePath:      envOrDefault("CAMPUS_API_BASE_PATH", "/api"),
		Token:            os.Getenv("CAMPUS_TOKEN"),
		SessionFile:      os.Getenv("CAMPUS_SESSION_FILE"),
		NATSURL:          os.Getenv("CAMPUS_NATS_URL"),
		DatabaseURL:      os.Getenv("CAMPUS_DATABASE_URL"),
		ExportDir:        envOrDefault("CAMPUS_EXPORT_DIR", "."),
		ExportS3Bucket:   os.Getenv("CAMPUS_EXPORT_S3_BUCKET"),
		ExportS3Region:   envOrDefault("CAMPUS_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Endpoint: os.Getenv("CAMPUS_EXPORT_S3_ENDPOINT"),
		ExportS3Prefix:   envOrDefault("CAMPUS_EXPORT_S3_PREFIX", "exports/"),
	}

	timeoutStr := envOrDefault("CAMPUS_REQUEST_TIMEOUT", "30s")
	d, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("CAMPUS_REQUEST_TIMEOUT: %w", err)
	}
	c.RequestTimeout = d

	level, err := ParseLevel(envOrDefault("CAMPUS_LOG_LEVEL", "warn"))
	if err != nil {
		return nil, fmt.Errorf("CAMPUS_LOG_LEVEL: %w", err)
	}
	c.LogLevel = level

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the loaded values. Every invalid field is reported.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("CAMPUS_API_URL", c.APIURL, absoluteURL("http", "https")),
		criterio.Run("CAMPUS_API_BASE_PATH", c.APIBasePath, basePath),
		criterio.Run("CAMPUS_REQUEST_TIMEOUT", c.RequestTimeout, func(d time.Duration) error {
			if d < 0 {
				return fmt.Errorf("must not be negative, got %s", d)
			}
			return nil
		}),
		criterio.Run("CAMPUS_NATS_URL", c.NATSURL, optional(absoluteURL("nats", "tls"))),
		criterio.Run("CAMPUS_EXPORT_S3_ENDPOINT", c.ExportS3Endpoint, optional(absoluteURL("http", "https"))),
		criterio.Run("CAMPUS_EXPORT_DIR", c.ExportDir, func(dir string) error {
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("must not be blank")
			}
			return nil
		}),
	)
}

// BaseURL is the API root every request path is appended to.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/") + "/" + strings.Trim(c.APIBasePath, "/")
}

// S3Enabled reports whether exports may be uploaded to S3.
func (c *Config) S3Enabled() bool {
	return c.ExportS3Bucket != ""
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func absoluteURL(schemes ...string) func(string) error {
	return func(raw string) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid URL: %w", err)
		}
		if u.Host == "" {
			return fmt.Errorf("must be an absolute URL, got %q", raw)
		}
		for _, s := range schemes {
			if u.Scheme == s {
				return nil
			}
		}
		return fmt.Errorf("scheme must be one of %s, got %q", strings.Join(schemes, "/"), u.Scheme)
	}
}

func optional(fn func(string) error) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		return fn(s)
	}
}

func basePath(p string) error {
	if p != "" && !strings.HasPrefix(p, "/") {
		return fmt.Errorf("must start with '/', got %q", p)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
