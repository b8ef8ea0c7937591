package onvif

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/juju/errors"
	"golang.org/x/net/html/charset"
)

// Capability is one functional area of the protocol
type Capability string

const (
	CapabilityDevice Capability = "device"
	CapabilityMedia  Capability = "media"
	CapabilityMedia2 Capability = "media2"
	CapabilityReplay Capability = "replay"
)

// Protocol namespaces
const (
	NamespaceDevice   = "http://www.onvif.org/ver10/device/wsdl"
	NamespaceMedia    = "http://www.onvif.org/ver10/media/wsdl"
	NamespaceMedia2   = "http://www.onvif.org/ver20/media/wsdl"
	NamespaceReplay   = "http://www.onvif.org/ver10/replay/wsdl"
	NamespaceSchema   = "http://www.onvif.org/ver10/schema"
	namespaceWSDL     = "http://schemas.xmlsoap.org/wsdl/"
	namespaceEnvelope = "http://www.w3.org/2003/05/soap-envelope"
)

// Binding names a WSDL binding by its namespace-qualified identifier
type Binding struct {
	Namespace string
	Name      string
}

func (b Binding) String() string {
	return "{" + b.Namespace + "}" + b.Name
}

// Action returns the SOAPAction header value for an operation of the binding
func (b Binding) Action(operation string) string {
	return b.Namespace + "/" + operation
}

type serviceDef struct {
	binding     Binding
	prefix      string
	wsdl        string
	servicePath string
}

var capabilities = map[Capability]serviceDef{
	CapabilityDevice: {
		binding:     Binding{NamespaceDevice, "DeviceBinding"},
		prefix:      "tds",
		wsdl:        "devicemgmt.wsdl",
		servicePath: "/onvif/device_service",
	},
	CapabilityMedia: {
		binding:     Binding{NamespaceMedia, "MediaBinding"},
		prefix:      "trt",
		wsdl:        "ver10/media/wsdl/media.wsdl",
		servicePath: "/onvif/media_service",
	},
	CapabilityMedia2: {
		binding:     Binding{NamespaceMedia2, "Media2Binding"},
		prefix:      "tr2",
		wsdl:        "ver20/media/wsdl/media.wsdl",
		servicePath: "/onvif/media_service",
	},
	CapabilityReplay: {
		binding: Binding{NamespaceReplay, "ReplayBinding"},
		prefix:  "trp",
		wsdl:    "ver10/replay.wsdl",
		// Homaxi recorders serve replay here rather than at /onvif/replay_service
		servicePath: "/onvif/Replay",
	},
}

// ServicePath returns the fixed path appended to the base URL for the capability
func (c Capability) ServicePath() string {
	return capabilities[c].servicePath
}

// Binding returns the protocol binding identifier for the capability
func (c Capability) Binding() Binding {
	return capabilities[c].binding
}

// boundService is a binding located in its protocol description
type boundService struct {
	Binding
	prefix string
	// operations declared by the binding; nil when no WSDL was checked
	operations map[string]struct{}
}

func (s *boundService) supports(operation string) bool {
	if s.operations == nil {
		return true
	}
	_, ok := s.operations[operation]
	return ok
}

// loadBinding locates the capability's binding in the WSDL under wsdlRoot.
// An empty wsdlRoot skips the document lookup.
func loadBinding(wsdlRoot string, c Capability) (*boundService, error) {
	def, ok := capabilities[c]
	if !ok {
		return nil, errors.NotSupportedf("capability %q", string(c))
	}

	svc := &boundService{Binding: def.binding, prefix: def.prefix}
	if wsdlRoot == "" {
		return svc, nil
	}

	path := filepath.Join(wsdlRoot, filepath.FromSlash(def.wsdl))
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Annotatef(err, "reading WSDL %s", path)
	}

	definitions := doc.Root()
	if definitions == nil || definitions.Tag != "definitions" {
		return nil, errors.NotValidf("WSDL %s", path)
	}

	tns := definitions.SelectAttrValue("targetNamespace", "")
	var available []string
	for _, b := range definitions.SelectElements("binding") {
		if b.NamespaceURI() != "" && b.NamespaceURI() != namespaceWSDL {
			continue
		}
		name := b.SelectAttrValue("name", "")
		available = append(available, Binding{tns, name}.String())
		if name != def.binding.Name || tns != def.binding.Namespace {
			continue
		}

		svc.operations = make(map[string]struct{})
		for _, op := range b.SelectElements("operation") {
			svc.operations[op.SelectAttrValue("name", "")] = struct{}{}
		}
		return svc, nil
	}

	sort.Strings(available)
	return nil, errors.NotFoundf("binding %s (available bindings are: %s)",
		def.binding, strings.Join(available, ", "))
}
