package onvif

import (
	"context"

	"github.com/beevik/etree"
)

// Media2RateControl limits ver20 encoder output
type Media2RateControl struct {
	ConstantBitRate *bool   `json:"constant_bitrate"`
	FrameRateLimit  float64 `json:"frame_rate_limit"`
	BitrateLimit    int     `json:"bitrate_limit"`
}

// VideoEncoder2Configuration is a media2 (ver20) video encoder
type VideoEncoder2Configuration struct {
	Token               string                  `json:"token"`
	Name                string                  `json:"name"`
	UseCount            int                     `json:"use_count"`
	Encoding            string                  `json:"encoding"`
	Resolution          VideoResolution         `json:"resolution"`
	RateControl         *Media2RateControl      `json:"rate_control"`
	Multicast           *MulticastConfiguration `json:"multicast"`
	Quality             float64                 `json:"quality"`
	GovLength           *int                    `json:"gov_length"`
	Profile             *string                 `json:"profile"`
	GuaranteedFrameRate *bool                   `json:"guaranteed_frame_rate"`
}

// VideoEncoderConfigurations lists the media2 video encoders
type VideoEncoderConfigurations struct {
	Configurations []VideoEncoder2Configuration `json:"configurations"`
}

// OSDType is the kind of on-screen display element
type OSDType string

const (
	OSDText     OSDType = "Text"
	OSDImage    OSDType = "Image"
	OSDExtended OSDType = "Extended"
)

// OSD is an on-screen display element
type OSD struct {
	Token            string  `json:"token"`
	VideoSourceToken string  `json:"video_source_token"`
	Type             OSDType `json:"type"`
}

// OSDs lists the on-screen display elements
type OSDs struct {
	OSDs []OSD `json:"osds"`
}

// Media2Client exposes the media2 (ver20) capability
type Media2Client struct {
	baseClient
}

// NewMedia2Client creates a media2 client bound to target
func NewMedia2Client(ctx context.Context, target ConnectionTarget, settings Settings) (*Media2Client, error) {
	base, err := connect(ctx, CapabilityMedia2, target, settings)
	if err != nil {
		return nil, err
	}
	return &Media2Client{baseClient: *base}, nil
}

func (c *Media2Client) base() *baseClient {
	if c == nil {
		return nil
	}
	return &c.baseClient
}

// GetVideoEncoderConfigurations fetches every video encoder configuration
func (c *Media2Client) GetVideoEncoderConfigurations(ctx context.Context) (VideoEncoderConfigurations, error) {
	return call(ctx, c.base(), "GetVideoEncoderConfigurations", nil, normalizeVideoEncoder2Configurations)
}

// GetOSDs retrieves the OSD elements, optionally limited to one video source configuration
func (c *Media2Client) GetOSDs(ctx context.Context, configurationToken string) (OSDs, error) {
	var build func(*etree.Element)
	if configurationToken != "" {
		build = func(req *etree.Element) {
			req.CreateElement(req.Space + ":ConfigurationToken").SetText(configurationToken)
		}
	}
	return call(ctx, c.base(), "GetOSDs", build, normalizeOSDs)
}

func normalizeVideoEncoder2Configurations(n node) (VideoEncoderConfigurations, error) {
	configs, err := mapAll(n.children("Configurations"), normalizeVideoEncoder2)
	if err != nil {
		return VideoEncoderConfigurations{}, err
	}
	return VideoEncoderConfigurations{Configurations: configs}, nil
}

func normalizeVideoEncoder2(n node) (VideoEncoder2Configuration, error) {
	var (
		ve  VideoEncoder2Configuration
		err error
	)
	if ve.Token, ve.Name, ve.UseCount, err = configEntity(n); err != nil {
		return ve, err
	}
	if ve.GovLength, err = n.optIntAttr("GovLength"); err != nil {
		return ve, err
	}
	ve.Profile = n.optAttr("Profile")
	if ve.GuaranteedFrameRate, err = n.optBoolAttr("GuaranteedFrameRate"); err != nil {
		return ve, err
	}
	if ve.Encoding, err = n.str("Encoding"); err != nil {
		return ve, err
	}
	if ve.Resolution, err = required(n, "Resolution", normalizeResolution); err != nil {
		return ve, err
	}
	ve.RateControl, err = optional(n, "RateControl", func(r node) (Media2RateControl, error) {
		var (
			rc  Media2RateControl
			err error
		)
		if rc.ConstantBitRate, err = r.optBoolAttr("ConstantBitRate"); err != nil {
			return rc, err
		}
		if rc.FrameRateLimit, err = r.float("FrameRateLimit"); err != nil {
			return rc, err
		}
		rc.BitrateLimit, err = r.int("BitrateLimit")
		return rc, err
	})
	if err != nil {
		return ve, err
	}
	if ve.Multicast, err = optional(n, "Multicast", normalizeMulticast); err != nil {
		return ve, err
	}
	ve.Quality, err = n.float("Quality")
	return ve, err
}

func normalizeOSDs(n node) (OSDs, error) {
	osds, err := mapAll(n.children("OSDs"), func(o node) (OSD, error) {
		var (
			osd OSD
			err error
		)
		if osd.Token, err = o.attr("token"); err != nil {
			return osd, err
		}
		if osd.VideoSourceToken, err = o.str("VideoSourceConfigurationToken"); err != nil {
			return osd, err
		}
		osd.Type, err = enum(o, "Type", OSDText, OSDImage, OSDExtended)
		return osd, err
	})
	if err != nil {
		return OSDs{}, err
	}
	return OSDs{OSDs: osds}, nil
}
