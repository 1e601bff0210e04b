// Package config handles configuration for the server component,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the punchclock server.
//
// Fields:
//   - HTTPAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - TimeZone: IANA zone name used when rendering attendance reports.
//   - CaptureTimeout: upper bound for a single screenshot or system probe.
//   - ProductiveShare: fraction of a closed session counted as productive.
//   - ScreenshotBackend: "local" or "s3".
//   - ScreenshotDir: directory for the local backend.
//   - S3AccessKey / S3SecretKey: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	HTTPAddr          string
	DatabaseDSN       string
	TimeZone          string
	CaptureTimeout    time.Duration
	ProductiveShare   float64
	ScreenshotBackend string
	ScreenshotDir     string
	S3AccessKey       string
	S3SecretKey       string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: The empty DatabaseDSN keeps everything in memory; point it at a
// real PostgreSQL instance for durable tracking.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = ""
	c.TimeZone = "UTC"
	c.CaptureTimeout = 3 * time.Second
	c.ProductiveShare = 0.8
	c.ScreenshotBackend = "local"
	c.ScreenshotDir = "screenshots"
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.S3Bucket = "punchclock"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, from an optional JSON file and finally from
// command-line flags. Later stages override earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
