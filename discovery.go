package onvif

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/ipv4"
)

// WS-Discovery defaults
const (
	DefaultMulticastAddr    = "239.255.255.250:3702"
	DefaultDiscoveryTimeout = 5 * time.Second
	DefaultMulticastTTL     = 2
)

const (
	namespaceAddressing = "http://schemas.xmlsoap.org/ws/2004/08/addressing"
	namespaceDiscovery  = "http://schemas.xmlsoap.org/ws/2005/04/discovery"
	namespaceNetwork    = "http://www.onvif.org/ver10/network/wsdl"
	probeAction         = namespaceDiscovery + "/Probe"
	discoveryTo         = "urn:schemas-xmlsoap-org:ws:2005:04:discovery"

	scopeName     = "onvif://www.onvif.org/name/"
	scopeLocation = "onvif://www.onvif.org/location/"
	scopeHardware = "onvif://www.onvif.org/hardware/"
)

// DiscoveryOptions provides options for device discovery
type DiscoveryOptions struct {
	Timeout       time.Duration
	MulticastAddr string
	// Interface sends the probe on a specific interface, nil uses the system default
	Interface *net.Interface
	// TTL is the multicast hop limit of the probe
	TTL    int
	Logger *zerolog.Logger
}

func (o DiscoveryOptions) withDefaults() DiscoveryOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultDiscoveryTimeout
	}
	if o.MulticastAddr == "" {
		o.MulticastAddr = DefaultMulticastAddr
	}
	if o.TTL <= 0 {
		o.TTL = DefaultMulticastTTL
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// DiscoveredDevice is one device answering a WS-Discovery probe
type DiscoveredDevice struct {
	EndpointAddress string   `json:"endpoint_address"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	Hardware        string   `json:"hardware"`
	XAddrs          []string `json:"xaddrs"`
	Types           []string `json:"types"`
	Scopes          []string `json:"scopes"`
}

// Target converts the first advertised service address into a ConnectionTarget.
// HTTPS addresses are addressed as a tunnel so the scheme is kept.
func (d DiscoveredDevice) Target() (ConnectionTarget, error) {
	if len(d.XAddrs) == 0 {
		return ConnectionTarget{}, fmt.Errorf("device %s advertises no service address", d.EndpointAddress)
	}
	u, err := url.Parse(d.XAddrs[0])
	if err != nil {
		return ConnectionTarget{}, fmt.Errorf("invalid service address %q: %w", d.XAddrs[0], err)
	}
	if u.Scheme == "https" {
		return ConnectionTarget{Host: u.Scheme + "://" + u.Host}, nil
	}

	port := 80
	if p := u.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return ConnectionTarget{}, fmt.Errorf("invalid port in %q: %w", d.XAddrs[0], err)
		}
	}
	return NewTarget(u.Hostname(), port), nil
}

// Discover multicasts a WS-Discovery probe for network video transmitters and
// collects the answers until the timeout elapses or ctx is done.
func Discover(ctx context.Context, opts DiscoveryOptions) ([]DiscoveredDevice, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With().Str("component", "discovery").Logger()

	addr, err := net.ResolveUDPAddr("udp4", opts.MulticastAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve multicast address: %w", err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("failed to create UDP connection: %w", err)
	}
	defer conn.Close()

	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetMulticastTTL(opts.TTL); err != nil {
		return nil, fmt.Errorf("failed to set multicast TTL: %w", err)
	}
	if err := pc.SetMulticastLoopback(true); err != nil {
		log.Debug().Err(err).Msg("Multicast loopback unavailable")
	}
	if opts.Interface != nil {
		if err := pc.SetMulticastInterface(opts.Interface); err != nil {
			return nil, fmt.Errorf("failed to select interface %s: %w", opts.Interface.Name, err)
		}
	}

	deadline := time.Now().Add(opts.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	messageID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	probe, err := probeMessage("uuid:" + messageID.String())
	if err != nil {
		return nil, err
	}
	if _, err := conn.WriteToUDP(probe, addr); err != nil {
		return nil, fmt.Errorf("failed to send probe message: %w", err)
	}
	log.Debug().Str("message_id", messageID.String()).Str("addr", addr.String()).Msg("Sent WS-Discovery probe")

	var devices []DiscoveredDevice
	buffer := make([]byte, 65536)
	for {
		n, from, err := conn.ReadFromUDP(buffer)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}

		matches, err := parseProbeMatches(buffer[:n])
		if err != nil {
			log.Debug().Err(err).Str("from", from.String()).Msg("Ignoring malformed discovery answer")
			continue
		}
		devices = append(devices, matches...)
	}

	if err := collectionError(ctx); err != nil {
		return nil, err
	}
	return deduplicateDevices(devices), nil
}

// collectionError reports a cancelled ctx. A passed deadline only ends the
// collection, like the discovery timeout does.
func collectionError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return nil
}

// probeMessage builds the WS-Discovery Probe for NetworkVideoTransmitter types
func probeMessage(messageID string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("s:Envelope")
	env.CreateAttr("xmlns:s", namespaceEnvelope)
	env.CreateAttr("xmlns:a", namespaceAddressing)
	env.CreateAttr("xmlns:d", namespaceDiscovery)
	env.CreateAttr("xmlns:dn", namespaceNetwork)

	header := env.CreateElement("s:Header")
	header.CreateElement("a:Action").SetText(probeAction)
	header.CreateElement("a:MessageID").SetText(messageID)
	header.CreateElement("a:To").SetText(discoveryTo)

	probe := env.CreateElement("s:Body").CreateElement("d:Probe")
	probe.CreateElement("d:Types").SetText("dn:NetworkVideoTransmitter")

	return doc.WriteToBytes()
}

// parseProbeMatches reads every ProbeMatch of a discovery answer
func parseProbeMatches(payload []byte) ([]DiscoveredDevice, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(payload); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, fmt.Errorf("discovery answer is not a SOAP envelope")
	}
	body := root.SelectElement("Body")
	if body == nil {
		return nil, fmt.Errorf("discovery answer has no SOAP body")
	}
	matches := body.SelectElement("ProbeMatches")
	if matches == nil {
		return nil, fmt.Errorf("discovery answer has no ProbeMatches")
	}

	var devices []DiscoveredDevice
	for _, match := range matches.SelectElements("ProbeMatch") {
		d := DiscoveredDevice{
			XAddrs: strings.Fields(textOf(match.SelectElement("XAddrs"))),
			Types:  strings.Fields(textOf(match.SelectElement("Types"))),
			Scopes: strings.Fields(textOf(match.SelectElement("Scopes"))),
		}
		if ref := match.SelectElement("EndpointReference"); ref != nil {
			d.EndpointAddress = textOf(ref.SelectElement("Address"))
		}
		d.Name, d.Location, d.Hardware = parseScopes(d.Scopes)
		devices = append(devices, d)
	}
	return devices, nil
}

func parseScopes(scopes []string) (name, location, hardware string) {
	for _, scope := range scopes {
		switch {
		case strings.HasPrefix(scope, scopeName):
			name = scopeValue(scope, scopeName)
		case strings.HasPrefix(scope, scopeLocation):
			location = scopeValue(scope, scopeLocation)
		case strings.HasPrefix(scope, scopeHardware):
			hardware = scopeValue(scope, scopeHardware)
		}
	}
	return
}

func scopeValue(scope, prefix string) string {
	v := strings.TrimPrefix(scope, prefix)
	if unescaped, err := url.PathUnescape(v); err == nil {
		v = unescaped
	}
	return strings.ReplaceAll(v, "_", " ")
}

// deduplicateDevices keeps the first answer per service address, in arrival order
func deduplicateDevices(devices []DiscoveredDevice) []DiscoveredDevice {
	seen := make(map[string]struct{})
	unique := []DiscoveredDevice{}
	for _, d := range devices {
		key := d.EndpointAddress
		if len(d.XAddrs) > 0 {
			key = d.XAddrs[0]
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, d)
	}
	return unique
}
