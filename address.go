package onvif

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/juju/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultRedirectURLField is the JSON field holding the device service URL
	DefaultRedirectURLField = "onvifUrl"
	// DefaultRedirectStripSuffix is removed from the device service URL to get the base URL
	DefaultRedirectStripSuffix = "/onvif/device_service"
	// DefaultRedirectTimeout bounds the security gateway lookup
	DefaultRedirectTimeout = 30 * time.Second
)

// RedirectSettings describes the security gateway lookup contract
type RedirectSettings struct {
	Timeout     time.Duration
	URLField    string
	StripSuffix string
}

func (r RedirectSettings) withDefaults() RedirectSettings {
	if r.Timeout <= 0 {
		r.Timeout = DefaultRedirectTimeout
	}
	if r.URLField == "" {
		r.URLField = DefaultRedirectURLField
	}
	if r.StripSuffix == "" {
		r.StripSuffix = DefaultRedirectStripSuffix
	}
	return r
}

// AddressResolver computes the base URL a capability service path is appended to
type AddressResolver struct {
	redirect RedirectSettings
	http     *resty.Client
	log      zerolog.Logger
}

// NewAddressResolver creates a resolver using the redirect settings
func NewAddressResolver(redirect RedirectSettings, log zerolog.Logger) *AddressResolver {
	redirect = redirect.withDefaults()

	r := resty.New()
	r.SetTimeout(redirect.Timeout)
	r.SetHeader("Accept", "application/json")
	// Security gateways commonly present self-signed certificates
	r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})

	return &AddressResolver{
		redirect: redirect,
		http:     r,
		log:      log,
	}
}

// Resolve returns the base URL for target, without any trailing service path
func (r *AddressResolver) Resolve(ctx context.Context, target ConnectionTarget) (string, error) {
	switch target.Mode() {
	case AddressTunnel:
		return strings.TrimSuffix(target.Host, "/"), nil
	case AddressRedirect:
		return r.lookupRedirect(ctx, *target.RedirectURL)
	}

	if target.Host == "" {
		return "", errors.NotValidf("empty host")
	}
	if target.Port == nil {
		return "", errors.NotValidf("direct address for %q without port", target.Host)
	}
	return fmt.Sprintf("http://%s:%d", target.Host, *target.Port), nil
}

// lookupRedirect asks the security gateway where the device really lives
func (r *AddressResolver) lookupRedirect(ctx context.Context, url string) (string, error) {
	var body map[string]interface{}

	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&body).
		ForceContentType("application/json").
		Get(url)
	if err != nil {
		return "", errors.Annotatef(err, "redirect lookup %s", url)
	}

	if resp.IsError() {
		return "", errors.Errorf("redirect lookup %s: HTTP %d", url, resp.StatusCode())
	}

	value, ok := body[r.redirect.URLField].(string)
	if !ok || value == "" {
		return "", errors.NotFoundf("field %q in redirect response", r.redirect.URLField)
	}

	base := strings.TrimSuffix(value, "/")
	base = strings.TrimSuffix(base, r.redirect.StripSuffix)
	base = strings.TrimSuffix(base, "/")

	r.log.Info().
		Str("redirect_url", url).
		Str("device_url", value).
		Str("base_url", base).
		Msg("Resolved device through security gateway")

	return base, nil
}
