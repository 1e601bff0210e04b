package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.HTTPAddr, ":8080")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.TimeZone, "UTC")
	assert.Equal(t, c.CaptureTimeout, 3*time.Second)
	assert.Equal(t, c.ProductiveShare, 0.8)
	assert.Equal(t, c.ScreenshotBackend, "local")
	assert.Equal(t, c.ScreenshotDir, "screenshots")
	assert.Equal(t, c.S3AccessKey, "")
	assert.Equal(t, c.S3SecretKey, "")
	assert.Equal(t, c.S3Bucket, "punchclock")
	assert.Equal(t, c.S3Region, "us-east-1")
	assert.Equal(t, c.S3BaseEndpoint, "")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.HTTPAddr, ":8080")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.TimeZone, "UTC")
	assert.Equal(t, c.CaptureTimeout, 3*time.Second)
	assert.Equal(t, c.ProductiveShare, 0.8)
	assert.Equal(t, c.ScreenshotBackend, "local")
	assert.Equal(t, c.ScreenshotDir, "screenshots")
}
