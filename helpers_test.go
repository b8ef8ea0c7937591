package onvif

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

const envelopeOpen = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:tt="http://www.onvif.org/ver10/schema"
  xmlns:tds="http://www.onvif.org/ver10/device/wsdl"
  xmlns:trt="http://www.onvif.org/ver10/media/wsdl"
  xmlns:tr2="http://www.onvif.org/ver20/media/wsdl"
  xmlns:trp="http://www.onvif.org/ver10/replay/wsdl"
  xmlns:ter="http://www.onvif.org/ver10/error"><s:Body>`

const envelopeClose = `</s:Body></s:Envelope>`

func soapEnvelope(body string) string {
	return envelopeOpen + body + envelopeClose
}

// recordedCall is one request received by a fakeDevice
type recordedCall struct {
	Path      string
	Operation string
	Action    string
	Request   *etree.Element
	Doc       *etree.Document
}

// fakeDevice answers SOAP requests from canned bodies keyed by operation name
type fakeDevice struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]string
	calls     []recordedCall
}

func newFakeDevice(t *testing.T, responses map[string]string) *fakeDevice {
	t.Helper()
	d := &fakeDevice{responses: responses}
	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(payload))
		req := doc.Root().SelectElement("Body").ChildElements()[0]

		d.mu.Lock()
		d.calls = append(d.calls, recordedCall{
			Path:      r.URL.Path,
			Operation: req.Tag,
			Action:    r.Header.Get("SOAPAction"),
			Request:   req,
			Doc:       doc,
		})
		body, ok := d.responses[req.Tag]
		d.mu.Unlock()

		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, soapEnvelope(`<s:Fault><s:Code><s:Value>s:Receiver</s:Value>
<s:Subcode><s:Value>ter:ActionNotSupported</s:Value></s:Subcode></s:Code>
<s:Reason><s:Text xml:lang="en">unsupported</s:Text></s:Reason></s:Fault>`))
			return
		}
		_, _ = io.WriteString(w, soapEnvelope(body))
	}))
	t.Cleanup(d.Close)
	return d
}

func (d *fakeDevice) Calls() []recordedCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]recordedCall(nil), d.calls...)
}

// target addresses the fake device in tunnel mode
func (d *fakeDevice) target() ConnectionTarget {
	return ConnectionTarget{Host: d.URL}.WithCredentials("admin", "secret")
}

func testSettings() Settings {
	s := DefaultSettings()
	s.WSDLPath = ""
	return s
}

// parseNode turns an XML fragment into a node for normalizer tests
func parseNode(t *testing.T, fragment string) node {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(envelopeOpen+fragment+envelopeClose))
	return newNode(doc.Root().SelectElement("Body").ChildElements()[0])
}
