// Package onvif provides a Go library for driving ONVIF cameras through
// typed capability clients.
package onvif

import (
	"context"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

// Default settings, matching the gateway configuration defaults
const (
	DefaultTimeout          = 60 * time.Second
	DefaultOperationTimeout = 60 * time.Second
	DefaultWSDLPath         = "wsdl/"
)

// Settings are the shared, already-resolved values every capability client uses
type Settings struct {
	// WSDLPath is the root of the protocol description documents.
	// Empty skips the binding lookup.
	WSDLPath string
	// Timeout bounds connecting and waiting for each response
	Timeout time.Duration
	// OperationTimeout bounds a whole operation call
	OperationTimeout time.Duration
	// VerifySSL enables certificate verification towards devices
	VerifySSL bool
	Redirect  RedirectSettings

	// Transport replaces the default HTTP transport when set
	Transport http.RoundTripper
	Logger    *zerolog.Logger
}

// DefaultSettings returns settings with the default timeouts and WSDL root
func DefaultSettings() Settings {
	return Settings{
		WSDLPath:         DefaultWSDLPath,
		Timeout:          DefaultTimeout,
		OperationTimeout: DefaultOperationTimeout,
	}
}

func (s Settings) logger() *zerolog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// Client is implemented by every capability client
type Client interface {
	// Capability returns the functional area the client is bound to
	Capability() Capability
	// Endpoint returns the full service URL the session posts to
	Endpoint() string
}

// baseClient carries the session shared by all capability clients
type baseClient struct {
	capability Capability
	session    *session
}

func (c *baseClient) Capability() Capability {
	return c.capability
}

func (c *baseClient) Endpoint() string {
	if c == nil || c.session == nil {
		return ""
	}
	return c.session.endpoint
}

// connect resolves the address, locates the binding and opens the session
func connect(ctx context.Context, capability Capability, target ConnectionTarget, settings Settings) (*baseClient, error) {
	op := "New" + capabilityName(capability) + "Client"
	log := settings.logger().With().
		Str("capability", string(capability)).
		Str("host", target.Host).
		Logger()

	svc, err := loadBinding(settings.WSDLPath, capability)
	if err != nil {
		return nil, creationError(op, err)
	}

	base, err := NewAddressResolver(settings.Redirect, log).Resolve(ctx, target)
	if err != nil {
		return nil, creationError(op, err)
	}

	endpoint := base + capability.ServicePath()
	log.Debug().
		Str("mode", target.Mode().String()).
		Str("endpoint", endpoint).
		Msg("ONVIF service URL")

	user, password := target.Credentials()
	settings.Logger = &log
	return &baseClient{
		capability: capability,
		session:    newSession(svc, endpoint, user, password, settings),
	}, nil
}

// call runs one operation through the session and normalizes its result
func call[T any](ctx context.Context, c *baseClient, op string, build func(*etree.Element), normalize func(node) (T, error)) (T, error) {
	var zero T
	if c == nil || c.session == nil {
		return zero, notInitializedError(op)
	}

	raw, err := c.session.Call(ctx, op, build)
	if err != nil {
		return zero, classify(op, err)
	}

	v, err := normalize(newNode(raw))
	if err != nil {
		return zero, newError(KindServiceInvocation, op, err)
	}
	return v, nil
}

// NewClient creates the capability client for capability
func NewClient(ctx context.Context, capability Capability, target ConnectionTarget, settings Settings) (Client, error) {
	var (
		c   Client
		err error
	)
	switch capability {
	case CapabilityDevice:
		c, err = asClient(NewDeviceClient(ctx, target, settings))
	case CapabilityMedia:
		c, err = asClient(NewMediaClient(ctx, target, settings))
	case CapabilityMedia2:
		c, err = asClient(NewMedia2Client(ctx, target, settings))
	case CapabilityReplay:
		c, err = asClient(NewReplayClient(ctx, target, settings))
	default:
		_, err = loadBinding("", capability)
		err = creationError("NewClient", err)
	}
	return c, err
}

// asClient keeps a failed constructor from producing a non-nil interface
func asClient[T Client](c T, err error) (Client, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func capabilityName(c Capability) string {
	switch c {
	case CapabilityDevice:
		return "Device"
	case CapabilityMedia:
		return "Media"
	case CapabilityMedia2:
		return "Media2"
	case CapabilityReplay:
		return "Replay"
	}
	return string(c)
}
