package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	onvif "github.com/SridarDhandapani/onvif-gateway"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "wsdl/", cfg.ONVIF.WSDLPath)
	assert.Equal(t, ":8000", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Log.Level)

	settings := cfg.ONVIFSettings()
	assert.Equal(t, 60*time.Second, settings.Timeout)
	assert.Equal(t, 60*time.Second, settings.OperationTimeout)
	assert.False(t, settings.VerifySSL)
	assert.Equal(t, onvif.RedirectSettings{
		Timeout:     30 * time.Second,
		URLField:    "onvifUrl",
		StripSuffix: "/onvif/device_service",
	}, settings.Redirect)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("ONVIF_SETTINGS__TIMEOUT", "5")
	t.Setenv("ONVIF_SETTINGS__VERIFY_SSL", "true")
	t.Setenv("SERVER__LISTEN", "127.0.0.1:9000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.ONVIFSettings().Timeout)
	assert.True(t, cfg.ONVIFSettings().VerifySSL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
onvif_settings:
  wsdl_path: /opt/wsdl
  operation_timeout: 2.5
  redirect_url_field: deviceUrl
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	settings := cfg.ONVIFSettings()
	assert.Equal(t, "/opt/wsdl", settings.WSDLPath)
	assert.Equal(t, 2500*time.Millisecond, settings.OperationTimeout)
	assert.Equal(t, "deviceUrl", settings.Redirect.URLField)
	assert.Equal(t, "/onvif/device_service", settings.Redirect.StripSuffix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("ONVIF_SETTINGS__TIMEOUT", "0")

	_, err := Load("")
	assert.ErrorContains(t, err, "onvif_settings.timeout")
}
