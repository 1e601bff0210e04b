package config

import (
	"flag"
	"os"
	"time"

	"github.com/mpavlovs/punchclock/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN (empty keeps the in-memory store)
//	-z string   IANA time zone for reports (e.g., "America/New_York")
//	-t string   capture timeout as a Go duration (e.g., "3s")
//	-p float    productive share of a closed session, in [0,1]
//	-k string   screenshot backend: "local" or "s3"
//	-o string   screenshot directory for the local backend
//	-u string   S3 access key
//	-w string   S3 secret key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - The timeout flag is accepted as a duration string and then converted
//     to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-z", "-t", "-p", "-k", "-o", "-u", "-w", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "report time zone")

	captureTimeout := fs.String("t", config.CaptureTimeout.String(), "capture timeout (duration)")
	fs.Float64Var(&config.ProductiveShare, "p", config.ProductiveShare, "productive share of a session")

	fs.StringVar(&config.ScreenshotBackend, "k", config.ScreenshotBackend, "screenshot backend (local|s3)")
	fs.StringVar(&config.ScreenshotDir, "o", config.ScreenshotDir, "screenshot directory")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "w", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	d, err := time.ParseDuration(*captureTimeout)
	if err != nil {
		panic(err)
	}
	config.CaptureTimeout = d
}
