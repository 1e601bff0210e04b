package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables.
//
// A .env file in the working directory is loaded first when present, so
// local setups can keep their settings next to the binary. Variables
// already exported by the system win over the file. Only variables that
// are actually set override the current Config values.
//
// Recognized variables:
//
//	HTTP_ADDR           bind address
//	DATABASE_DSN        PostgreSQL DSN
//	TIME_ZONE           IANA zone for reports
//	CAPTURE_TIMEOUT     Go duration, e.g. "3s"
//	PRODUCTIVE_SHARE    float in [0,1]
//	SCREENSHOT_BACKEND  "local" or "s3"
//	SCREENSHOT_DIR      directory for the local backend
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// Malformed duration or float values panic, matching the JSON stage.
func parseEnv(config *Config) {
	// Missing .env is fine; the system environment still applies.
	_ = godotenv.Load()

	lookupString(&config.HTTPAddr, "HTTP_ADDR")
	lookupString(&config.DatabaseDSN, "DATABASE_DSN")
	lookupString(&config.TimeZone, "TIME_ZONE")

	if v, ok := os.LookupEnv("CAPTURE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.CaptureTimeout = d
	}

	if v, ok := os.LookupEnv("PRODUCTIVE_SHARE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		config.ProductiveShare = f
	}

	lookupString(&config.ScreenshotBackend, "SCREENSHOT_BACKEND")
	lookupString(&config.ScreenshotDir, "SCREENSHOT_DIR")
	lookupString(&config.S3AccessKey, "S3_ACCESS_KEY")
	lookupString(&config.S3SecretKey, "S3_SECRET_KEY")
	lookupString(&config.S3Bucket, "S3_BUCKET")
	lookupString(&config.S3Region, "S3_REGION")
	lookupString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
