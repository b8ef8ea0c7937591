// Package config loads the gateway configuration from file, environment and defaults.
package config

import (
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/viper"

	onvif "github.com/SridarDhandapani/onvif-gateway"
	"github.com/SridarDhandapani/onvif-gateway/logger"
)

// Nested keys map to environment variables with this delimiter, e.g. ONVIF_SETTINGS__TIMEOUT
const envKeyDelimiter = "__"

// ONVIF holds the onvif_settings section. Durations are in seconds.
type ONVIF struct {
	WSDLPath            string  `mapstructure:"wsdl_path"`
	Timeout             float64 `mapstructure:"timeout"`
	OperationTimeout    float64 `mapstructure:"operation_timeout"`
	VerifySSL           bool    `mapstructure:"verify_ssl"`
	RedirectTimeout     float64 `mapstructure:"redirect_timeout"`
	RedirectURLField    string  `mapstructure:"redirect_url_field"`
	RedirectStripSuffix string  `mapstructure:"redirect_strip_suffix"`
}

// Server holds the HTTP listener settings
type Server struct {
	Listen          string  `mapstructure:"listen"`
	ShutdownTimeout float64 `mapstructure:"shutdown_timeout"`
}

// Config is the full gateway configuration
type Config struct {
	ONVIF  ONVIF         `mapstructure:"onvif_settings"`
	Server Server        `mapstructure:"server"`
	Log    logger.Config `mapstructure:"log"`
}

// New returns a viper instance with the defaults and environment binding in place
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeyDelimiter))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("onvif_settings.wsdl_path", onvif.DefaultWSDLPath)
	v.SetDefault("onvif_settings.timeout", onvif.DefaultTimeout.Seconds())
	v.SetDefault("onvif_settings.operation_timeout", onvif.DefaultOperationTimeout.Seconds())
	v.SetDefault("onvif_settings.verify_ssl", false)
	v.SetDefault("onvif_settings.redirect_timeout", onvif.DefaultRedirectTimeout.Seconds())
	v.SetDefault("onvif_settings.redirect_url_field", onvif.DefaultRedirectURLField)
	v.SetDefault("onvif_settings.redirect_strip_suffix", onvif.DefaultRedirectStripSuffix)

	v.SetDefault("server.listen", ":8000")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.pretty", false)
}

// Load reads cfgFile when given, then applies environment overrides
func Load(cfgFile string) (Config, error) {
	return LoadFrom(New(), cfgFile)
}

// LoadFrom reads cfgFile into v when given and decodes the result
func LoadFrom(v *viper.Viper, cfgFile string) (Config, error) {
	var cfg Config

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errors.Annotatef(err, "reading config %s", cfgFile)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Annotate(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the gateway cannot run with
func (c Config) Validate() error {
	if c.ONVIF.Timeout <= 0 {
		return errors.NotValidf("onvif_settings.timeout %v", c.ONVIF.Timeout)
	}
	if c.ONVIF.OperationTimeout <= 0 {
		return errors.NotValidf("onvif_settings.operation_timeout %v", c.ONVIF.OperationTimeout)
	}
	if c.ONVIF.RedirectTimeout <= 0 {
		return errors.NotValidf("onvif_settings.redirect_timeout %v", c.ONVIF.RedirectTimeout)
	}
	if c.Server.Listen == "" {
		return errors.NotValidf("empty server.listen")
	}
	return nil
}

// ONVIFSettings converts the onvif_settings section into client settings
func (c Config) ONVIFSettings() onvif.Settings {
	return onvif.Settings{
		WSDLPath:         c.ONVIF.WSDLPath,
		Timeout:          seconds(c.ONVIF.Timeout),
		OperationTimeout: seconds(c.ONVIF.OperationTimeout),
		VerifySSL:        c.ONVIF.VerifySSL,
		Redirect: onvif.RedirectSettings{
			Timeout:     seconds(c.ONVIF.RedirectTimeout),
			URLField:    c.ONVIF.RedirectURLField,
			StripSuffix: c.ONVIF.RedirectStripSuffix,
		},
	}
}

// ShutdownTimeout is the grace period for in-flight requests on exit
func (c Config) ShutdownTimeout() time.Duration {
	return seconds(c.Server.ShutdownTimeout)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
