package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mpavlovs/punchclock/internal/flagx"
	"github.com/mpavlovs/punchclock/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the capture timeout either as a
// string like "3s" or as integer nanoseconds. ProductiveShare is a
// pointer so an absent field can be told apart from an explicit zero.
// After parsing, values are copied into the runtime Config.
type JsonConfig struct {
	HTTPAddr          string         `json:"http_addr"`
	DatabaseDSN       string         `json:"database_dsn"`
	TimeZone          string         `json:"time_zone"`
	CaptureTimeout    timex.Duration `json:"capture_timeout"`
	ProductiveShare   *float64       `json:"productive_share"`
	ScreenshotBackend string         `json:"screenshot_backend"`
	ScreenshotDir     string         `json:"screenshot_dir"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.ConfigFileFlag().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies the fields the file actually sets into the provided Config,
//     so a partial file keeps defaults for everything it omits.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags,
// where later stages override earlier ones.
func parseJson(config *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.TimeZone != "" {
		config.TimeZone = c.TimeZone
	}
	if c.CaptureTimeout.Duration != 0 {
		config.CaptureTimeout = time.Duration(c.CaptureTimeout.Duration)
	}
	if c.ProductiveShare != nil {
		config.ProductiveShare = *c.ProductiveShare
	}
	if c.ScreenshotBackend != "" {
		config.ScreenshotBackend = c.ScreenshotBackend
	}
	if c.ScreenshotDir != "" {
		config.ScreenshotDir = c.ScreenshotDir
	}
	if c.S3AccessKey != "" {
		config.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		config.S3SecretKey = c.S3SecretKey
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
