package onvif

import (
	"context"

	"github.com/beevik/etree"
)

// DefaultRecordingToken is the recording most devices expose first
const DefaultRecordingToken = "OnvifRecordingToken_1"

// ReplayClient exposes the replay capability
type ReplayClient struct {
	baseClient
}

// NewReplayClient creates a replay client bound to target
func NewReplayClient(ctx context.Context, target ConnectionTarget, settings Settings) (*ReplayClient, error) {
	base, err := connect(ctx, CapabilityReplay, target, settings)
	if err != nil {
		return nil, err
	}
	return &ReplayClient{baseClient: *base}, nil
}

func (c *ReplayClient) base() *baseClient {
	if c == nil {
		return nil
	}
	return &c.baseClient
}

// GetReplayUri requests a unicast RTP over UDP replay URI for recordingToken.
// An empty token selects DefaultRecordingToken.
func (c *ReplayClient) GetReplayUri(ctx context.Context, recordingToken string) (ReplayURI, error) {
	if recordingToken == "" {
		recordingToken = DefaultRecordingToken
	}
	return call(ctx, c.base(), "GetReplayUri", func(req *etree.Element) {
		setup := req.CreateElement(req.Space + ":StreamSetup")
		setup.CreateElement("tt:Stream").SetText("RTP-Unicast")
		setup.CreateElement("tt:Transport").CreateElement("tt:Protocol").SetText("UDP")
		req.CreateElement(req.Space + ":RecordingToken").SetText(recordingToken)
	}, normalizeReplayURI)
}

func normalizeReplayURI(n node) (ReplayURI, error) {
	uri, err := n.str("Uri")
	return ReplayURI{URI: uri}, err
}
