package onvif

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeMatches = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://www.w3.org/2003/05/soap-envelope"
  xmlns:wsa="http://schemas.xmlsoap.org/ws/2004/08/addressing"
  xmlns:d="http://schemas.xmlsoap.org/ws/2005/04/discovery"
  xmlns:dn="http://www.onvif.org/ver10/network/wsdl">
<SOAP-ENV:Header><wsa:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/ProbeMatches</wsa:Action></SOAP-ENV:Header>
<SOAP-ENV:Body><d:ProbeMatches>
<d:ProbeMatch>
  <wsa:EndpointReference><wsa:Address>urn:uuid:1111</wsa:Address></wsa:EndpointReference>
  <d:Types>dn:NetworkVideoTransmitter</d:Types>
  <d:Scopes>onvif://www.onvif.org/type/video_encoder onvif://www.onvif.org/name/Front_Door onvif://www.onvif.org/location/Building%201 onvif://www.onvif.org/hardware/IPC-123</d:Scopes>
  <d:XAddrs>http://192.168.1.20/onvif/device_service http://[fe80::1]/onvif/device_service</d:XAddrs>
</d:ProbeMatch>
<d:ProbeMatch>
  <wsa:EndpointReference><wsa:Address>urn:uuid:2222</wsa:Address></wsa:EndpointReference>
  <d:XAddrs>https://192.168.1.21:8443/onvif/device_service</d:XAddrs>
</d:ProbeMatch>
</d:ProbeMatches></SOAP-ENV:Body></SOAP-ENV:Envelope>`

func TestParseProbeMatches(t *testing.T) {
	devices, err := parseProbeMatches([]byte(probeMatches))
	require.NoError(t, err)
	require.Len(t, devices, 2)

	d := devices[0]
	assert.Equal(t, "urn:uuid:1111", d.EndpointAddress)
	assert.Equal(t, "Front Door", d.Name)
	assert.Equal(t, "Building 1", d.Location)
	assert.Equal(t, "IPC-123", d.Hardware)
	assert.Equal(t, []string{"dn:NetworkVideoTransmitter"}, d.Types)
	assert.Len(t, d.Scopes, 4)
	assert.Equal(t, []string{"http://192.168.1.20/onvif/device_service", "http://[fe80::1]/onvif/device_service"}, d.XAddrs)

	assert.Equal(t, "urn:uuid:2222", devices[1].EndpointAddress)
	assert.Empty(t, devices[1].Name)
}

func TestParseProbeMatchesMalformed(t *testing.T) {
	for name, payload := range map[string]string{
		"not xml":      "garbage",
		"not envelope": "<html/>",
		"no matches":   soapEnvelope(""),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseProbeMatches([]byte(payload))
			assert.Error(t, err)
		})
	}
}

func TestDeduplicateDevices(t *testing.T) {
	devices := deduplicateDevices([]DiscoveredDevice{
		{EndpointAddress: "a", XAddrs: []string{"http://10.0.0.1/onvif/device_service"}},
		{EndpointAddress: "b", XAddrs: []string{"http://10.0.0.2/onvif/device_service"}},
		{EndpointAddress: "a-again", XAddrs: []string{"http://10.0.0.1/onvif/device_service"}},
		{EndpointAddress: "no-xaddr"},
		{EndpointAddress: "no-xaddr"},
	})

	var addrs []string
	for _, d := range devices {
		addrs = append(addrs, d.EndpointAddress)
	}
	assert.Equal(t, []string{"a", "b", "no-xaddr"}, addrs)

	assert.NotNil(t, deduplicateDevices(nil))
}

func TestDiscoveredDeviceTarget(t *testing.T) {
	target, err := DiscoveredDevice{XAddrs: []string{"http://192.168.1.20:8080/onvif/device_service"}}.Target()
	require.NoError(t, err)
	assert.Equal(t, AddressDirect, target.Mode())
	assert.Equal(t, "192.168.1.20", target.Host)
	require.NotNil(t, target.Port)
	assert.Equal(t, 8080, *target.Port)

	target, err = DiscoveredDevice{XAddrs: []string{"http://192.168.1.20/onvif/device_service"}}.Target()
	require.NoError(t, err)
	assert.Equal(t, 80, *target.Port)

	target, err = DiscoveredDevice{XAddrs: []string{"https://192.168.1.21:8443/onvif/device_service"}}.Target()
	require.NoError(t, err)
	assert.Equal(t, AddressTunnel, target.Mode())
	assert.Equal(t, "https://192.168.1.21:8443", target.Host)

	_, err = DiscoveredDevice{EndpointAddress: "urn:uuid:1"}.Target()
	assert.Error(t, err)
}

func TestProbeMessage(t *testing.T) {
	payload, err := probeMessage("uuid:abc")
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(payload))
	assert.Equal(t, "uuid:abc", doc.FindElement("//Header/MessageID").Text())
	assert.Equal(t, probeAction, doc.FindElement("//Header/Action").Text())
	assert.Equal(t, "dn:NetworkVideoTransmitter", doc.FindElement("//Body/Probe/Types").Text())
}

func TestDiscoveryOptionsDefaults(t *testing.T) {
	opts := DiscoveryOptions{}.withDefaults()
	assert.Equal(t, DefaultDiscoveryTimeout, opts.Timeout)
	assert.Equal(t, DefaultMulticastAddr, opts.MulticastAddr)
	assert.Equal(t, DefaultMulticastTTL, opts.TTL)
	assert.NotNil(t, opts.Logger)
}

func TestCollectionError(t *testing.T) {
	assert.NoError(t, collectionError(context.Background()))

	expired, cancelExpired := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancelExpired()
	<-expired.Done()
	assert.NoError(t, collectionError(expired), "a deadline keeps the collected answers")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, collectionError(cancelled), context.Canceled)
}
