package onvif

import (
	"bytes"
	"context"
	"crypto/sha1"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

const (
	namespaceWSSE     = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	namespaceWSU      = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	passwordDigestURI = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
	nonceEncodingURI  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
)

// session is an authenticated handle bound to one capability endpoint
type session struct {
	service  *boundService
	endpoint string
	username string
	password string

	operationTimeout time.Duration
	http             *http.Client
	log              zerolog.Logger

	// clock and nonce source, replaceable in tests
	now   func() time.Time
	nonce func() []byte
}

func newSession(svc *boundService, endpoint, username, password string, settings Settings) *session {
	return &session{
		service:          svc,
		endpoint:         endpoint,
		username:         username,
		password:         password,
		operationTimeout: settings.OperationTimeout,
		http:             newHTTPClient(settings),
		log:              *settings.logger(),
		now:              time.Now,
		nonce:            randomNonce,
	}
}

// newHTTPClient builds a transport that fails fast on the connect/read timeout
func newHTTPClient(settings Settings) *http.Client {
	if settings.Transport != nil {
		return &http.Client{Transport: settings.Transport}
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: settings.Timeout}).DialContext,
			TLSHandshakeTimeout:   settings.Timeout,
			ResponseHeaderTimeout: settings.Timeout,
			TLSClientConfig:       &tls.Config{InsecureSkipVerify: !settings.VerifySSL},
			// one request per client, nothing to keep alive
			DisableKeepAlives: true,
		},
	}
}

func randomNonce() []byte {
	id := uuid.Must(uuid.NewV4())
	return id.Bytes()
}

// passwordDigest creates the WS-Security password digest
func passwordDigest(nonce []byte, created, password string) string {
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Call invokes operation and returns the response element found in the SOAP body.
// build, when not nil, fills in the request element.
func (s *session) Call(ctx context.Context, operation string, build func(req *etree.Element)) (*etree.Element, error) {
	if !s.service.supports(operation) {
		return nil, fmt.Errorf("operation %s is not declared by %s", operation, s.service.Binding)
	}

	if s.operationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.operationTimeout)
		defer cancel()
	}

	doc := s.envelope(operation, build)
	payload, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	s.log.Debug().
		Str("endpoint", s.endpoint).
		Str("operation", operation).
		Msg("Calling ONVIF operation")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	action := s.service.Action(operation)
	req.Header.Set("Content-Type", fmt.Sprintf("application/soap+xml; charset=utf-8; action=%q", action))
	req.Header.Set("SOAPAction", action)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseResponse(operation, resp.StatusCode, respBody)
}

// envelope builds the SOAP 1.2 request with the UsernameToken header
func (s *session) envelope(operation string, build func(req *etree.Element)) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("s:Envelope")
	env.CreateAttr("xmlns:s", namespaceEnvelope)
	env.CreateAttr("xmlns:tt", NamespaceSchema)
	env.CreateAttr("xmlns:"+s.service.prefix, s.service.Namespace)

	header := env.CreateElement("s:Header")
	security := header.CreateElement("Security")
	security.CreateAttr("xmlns", namespaceWSSE)
	security.CreateAttr("s:mustUnderstand", "1")

	nonce := s.nonce()
	created := s.now().UTC().Format("2006-01-02T15:04:05.000Z")

	token := security.CreateElement("UsernameToken")
	token.CreateElement("Username").SetText(s.username)
	password := token.CreateElement("Password")
	password.CreateAttr("Type", passwordDigestURI)
	password.SetText(passwordDigest(nonce, created, s.password))
	nonceEl := token.CreateElement("Nonce")
	nonceEl.CreateAttr("EncodingType", nonceEncodingURI)
	nonceEl.SetText(base64.StdEncoding.EncodeToString(nonce))
	createdEl := token.CreateElement("Created")
	createdEl.CreateAttr("xmlns", namespaceWSU)
	createdEl.SetText(created)

	body := env.CreateElement("s:Body")
	req := body.CreateElement(s.service.prefix + ":" + operation)
	if build != nil {
		build(req)
	}

	return doc
}

// parseResponse extracts the response element or the SOAP fault
func parseResponse(operation string, status int, payload []byte) (*etree.Element, error) {
	// Some cameras return error codes with an empty body instead of a SOAP fault
	if status >= 400 && len(bytes.TrimSpace(payload)) == 0 {
		return nil, fmt.Errorf("HTTP %d with empty response", status)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(payload); err != nil {
		if status >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
		}
		return nil, fmt.Errorf("failed to parse %s response: %w", operation, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, fmt.Errorf("%s response is not a SOAP envelope", operation)
	}

	body := root.SelectElement("Body")
	if body == nil {
		return nil, fmt.Errorf("%s response has no SOAP body", operation)
	}

	if fault := body.SelectElement("Fault"); fault != nil {
		return nil, parseFault(fault)
	}

	if status >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
	}

	children := body.ChildElements()
	if len(children) == 0 {
		return nil, fmt.Errorf("%s response body is empty", operation)
	}
	return children[0], nil
}

// parseFault reads SOAP 1.2 Code/Subcode/Reason and SOAP 1.1 faultcode/faultstring
func parseFault(fault *etree.Element) *SOAPFault {
	f := &SOAPFault{}

	if code := fault.SelectElement("Code"); code != nil {
		f.Code = textOf(code.SelectElement("Value"))
		if sub := code.SelectElement("Subcode"); sub != nil {
			f.Subcode = textOf(sub.SelectElement("Value"))
			// the innermost subcode is the most specific
			for next := sub.SelectElement("Subcode"); next != nil; next = next.SelectElement("Subcode") {
				f.Subcode = textOf(next.SelectElement("Value"))
			}
		}
	}
	if reason := fault.SelectElement("Reason"); reason != nil {
		f.Reason = textOf(reason.SelectElement("Text"))
	}

	if f.Code == "" {
		f.Code = textOf(fault.SelectElement("faultcode"))
	}
	if f.Reason == "" {
		f.Reason = textOf(fault.SelectElement("faultstring"))
	}

	return f
}

func textOf(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}

// localPart strips a namespace prefix from a QName value such as ter:NotAuthorized
func localPart(qname string) string {
	if i := strings.LastIndex(qname, ":"); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
