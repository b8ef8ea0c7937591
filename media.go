package onvif

import (
	"context"

	"github.com/beevik/etree"
)

// MediaClient exposes the media (ver10) capability
type MediaClient struct {
	baseClient
}

// NewMediaClient creates a media client bound to target
func NewMediaClient(ctx context.Context, target ConnectionTarget, settings Settings) (*MediaClient, error) {
	base, err := connect(ctx, CapabilityMedia, target, settings)
	if err != nil {
		return nil, err
	}
	return &MediaClient{baseClient: *base}, nil
}

func (c *MediaClient) base() *baseClient {
	if c == nil {
		return nil
	}
	return &c.baseClient
}

// GetAudioOutputs lists the audio output tokens
func (c *MediaClient) GetAudioOutputs(ctx context.Context) (AudioOutputs, error) {
	return call(ctx, c.base(), "GetAudioOutputs", nil, normalizeAudioOutputs)
}

// GetProfiles fetches every media profile with its configurations
func (c *MediaClient) GetProfiles(ctx context.Context) (MediaProfiles, error) {
	return call(ctx, c.base(), "GetProfiles", nil, normalizeProfiles)
}

// GetStreamUri retrieves the RTSP stream URI for a given profile token
func (c *MediaClient) GetStreamUri(ctx context.Context, profileToken string) (MediaURI, error) {
	return call(ctx, c.base(), "GetStreamUri", func(req *etree.Element) {
		setup := req.CreateElement(req.Space + ":StreamSetup")
		setup.CreateElement("tt:Stream").SetText("RTP-Unicast")
		setup.CreateElement("tt:Transport").CreateElement("tt:Protocol").SetText("RTSP")
		req.CreateElement(req.Space + ":ProfileToken").SetText(profileToken)
	}, normalizeStreamURI)
}

func normalizeAudioOutputs(n node) (AudioOutputs, error) {
	outputs, err := mapAll(n.children("AudioOutputs"), func(o node) (AudioOutput, error) {
		token, err := o.attr("token")
		return AudioOutput{Token: token}, err
	})
	if err != nil {
		return AudioOutputs{}, err
	}
	return AudioOutputs{AudioOutputs: outputs}, nil
}

func normalizeStreamURI(n node) (MediaURI, error) {
	return required(n, "MediaUri", func(m node) (MediaURI, error) {
		var (
			uri MediaURI
			err error
		)
		if uri.URI, err = m.str("Uri"); err != nil {
			return uri, err
		}
		if uri.InvalidAfterConnect, err = m.bool("InvalidAfterConnect"); err != nil {
			return uri, err
		}
		if uri.InvalidAfterReboot, err = m.bool("InvalidAfterReboot"); err != nil {
			return uri, err
		}
		uri.Timeout, err = m.durationString("Timeout")
		return uri, err
	})
}

func normalizeProfiles(n node) (MediaProfiles, error) {
	profiles, err := mapAll(n.children("Profiles"), normalizeProfile)
	if err != nil {
		return MediaProfiles{}, err
	}
	return MediaProfiles{Profiles: profiles}, nil
}

func normalizeProfile(n node) (MediaProfile, error) {
	var (
		p   MediaProfile
		err error
	)
	if p.Token, err = n.attr("token"); err != nil {
		return p, err
	}
	fixed, err := n.optBoolAttr("fixed")
	if err != nil {
		return p, err
	}
	p.Fixed = fixed != nil && *fixed
	if p.Name, err = n.str("Name"); err != nil {
		return p, err
	}

	if p.VideoSourceConfiguration, err = optional(n, "VideoSourceConfiguration", normalizeVideoSource); err != nil {
		return p, err
	}
	if p.AudioSourceConfiguration, err = optional(n, "AudioSourceConfiguration", normalizeAudioSource); err != nil {
		return p, err
	}
	if p.VideoEncoderConfiguration, err = optional(n, "VideoEncoderConfiguration", normalizeVideoEncoder); err != nil {
		return p, err
	}
	if p.AudioEncoderConfiguration, err = optional(n, "AudioEncoderConfiguration", normalizeAudioEncoder); err != nil {
		return p, err
	}
	if p.VideoAnalyticsConfiguration, err = optional(n, "VideoAnalyticsConfiguration", normalizeVideoAnalytics); err != nil {
		return p, err
	}
	if p.PTZConfiguration, err = optional(n, "PTZConfiguration", normalizePTZConfiguration); err != nil {
		return p, err
	}
	if p.MetadataConfiguration, err = optional(n, "MetadataConfiguration", normalizeMetadata); err != nil {
		return p, err
	}
	if p.Extension, err = optional(n, "Extension", normalizeProfileExtension); err != nil {
		return p, err
	}
	return p, nil
}

// configEntity reads the token, Name and UseCount every configuration carries
func configEntity(n node) (token, name string, useCount int, err error) {
	if token, err = n.attr("token"); err != nil {
		return
	}
	if name, err = n.str("Name"); err != nil {
		return
	}
	useCount, err = n.int("UseCount")
	return
}

func normalizeVideoSource(n node) (VideoSourceConfiguration, error) {
	var (
		vs  VideoSourceConfiguration
		err error
	)
	if vs.Token, vs.Name, vs.UseCount, err = configEntity(n); err != nil {
		return vs, err
	}
	if vs.SourceToken, err = n.str("SourceToken"); err != nil {
		return vs, err
	}
	vs.ViewMode = n.optAttr("ViewMode")

	bounds, err := n.must("Bounds")
	if err != nil {
		return vs, err
	}
	if vs.Bounds.X, err = bounds.intAttr("x"); err != nil {
		return vs, err
	}
	if vs.Bounds.Y, err = bounds.intAttr("y"); err != nil {
		return vs, err
	}
	if vs.Bounds.Width, err = bounds.intAttr("width"); err != nil {
		return vs, err
	}
	if vs.Bounds.Height, err = bounds.intAttr("height"); err != nil {
		return vs, err
	}

	vs.Extension, err = optional(n, "Extension", func(e node) (VideoSourceConfigurationExtension, error) {
		var (
			ext VideoSourceConfigurationExtension
			err error
		)
		if ext.Rotate, err = optional(e, "Rotate", normalizeRotate); err != nil {
			return ext, err
		}
		ext.Extension, err = optional(e, "Extension", normalizeVideoSourceExtension2)
		return ext, err
	})
	return vs, err
}

func normalizeRotate(n node) (Rotate, error) {
	var (
		r   Rotate
		err error
	)
	if r.Mode, err = enum(n, "Mode", RotateOff, RotateOn, RotateAuto); err != nil {
		return r, err
	}
	if r.Degree, err = n.optInt("Degree"); err != nil {
		return r, err
	}
	r.Extension = n.optExtension("Extension")
	return r, nil
}

func normalizeVideoSourceExtension2(n node) (VideoSourceConfigurationExtension2, error) {
	var (
		ext VideoSourceConfigurationExtension2
		err error
	)
	if ext.LensDescription, err = mapAll(n.children("LensDescription"), normalizeLensDescription); err != nil {
		return ext, err
	}
	ext.SceneOrientation, err = optional(n, "SceneOrientation", func(s node) (SceneOrientation, error) {
		mode, err := enum(s, "Mode", SceneOrientationManual, SceneOrientationAuto)
		return SceneOrientation{Mode: mode, Orientation: s.optStr("Orientation")}, err
	})
	return ext, err
}

func normalizeLensDescription(n node) (LensDescription, error) {
	var (
		lens LensDescription
		err  error
	)
	if lens.FocalLength, err = n.optFloatAttr("FocalLength"); err != nil {
		return lens, err
	}
	if offset, ok := n.child("Offset"); ok {
		if lens.Offset.X, err = offset.optFloatAttr("x"); err != nil {
			return lens, err
		}
		if lens.Offset.Y, err = offset.optFloatAttr("y"); err != nil {
			return lens, err
		}
	}
	lens.Projection, err = mapAll(n.children("Projection"), func(p node) (LensProjection, error) {
		var (
			proj LensProjection
			err  error
		)
		if proj.Angle, err = p.float("Angle"); err != nil {
			return proj, err
		}
		if proj.Radius, err = p.float("Radius"); err != nil {
			return proj, err
		}
		proj.Transmittance, err = p.optFloat("Transmittance")
		return proj, err
	})
	if err != nil {
		return lens, err
	}
	lens.XFactor, err = n.float("XFactor")
	return lens, err
}

func normalizeAudioSource(n node) (AudioSourceConfiguration, error) {
	var (
		as  AudioSourceConfiguration
		err error
	)
	if as.Token, as.Name, as.UseCount, err = configEntity(n); err != nil {
		return as, err
	}
	as.SourceToken, err = n.str("SourceToken")
	return as, err
}

func normalizeVideoEncoder(n node) (VideoEncoderConfiguration, error) {
	var (
		ve  VideoEncoderConfiguration
		err error
	)
	if ve.Token, ve.Name, ve.UseCount, err = configEntity(n); err != nil {
		return ve, err
	}
	if ve.GuaranteedFrameRate, err = n.optBoolAttr("GuaranteedFrameRate"); err != nil {
		return ve, err
	}
	if ve.Encoding, err = enum(n, "Encoding", VideoEncodingJPEG, VideoEncodingMPEG4, VideoEncodingH264); err != nil {
		return ve, err
	}
	if ve.Resolution, err = required(n, "Resolution", normalizeResolution); err != nil {
		return ve, err
	}
	if ve.Quality, err = n.float("Quality"); err != nil {
		return ve, err
	}
	if ve.RateControl, err = optional(n, "RateControl", normalizeRateControl); err != nil {
		return ve, err
	}
	ve.MPEG4, err = optional(n, "MPEG4", func(m node) (Mpeg4Configuration, error) {
		gov, err := m.int("GovLength")
		if err != nil {
			return Mpeg4Configuration{}, err
		}
		profile, err := enum(m, "Mpeg4Profile", Mpeg4ProfileSP, Mpeg4ProfileASP)
		return Mpeg4Configuration{GovLength: gov, Mpeg4Profile: profile}, err
	})
	if err != nil {
		return ve, err
	}
	ve.H264, err = optional(n, "H264", func(h node) (H264Configuration, error) {
		gov, err := h.int("GovLength")
		if err != nil {
			return H264Configuration{}, err
		}
		profile, err := enum(h, "H264Profile",
			H264ProfileBaseline, H264ProfileMain, H264ProfileExtended, H264ProfileHigh)
		return H264Configuration{GovLength: gov, H264Profile: profile}, err
	})
	if err != nil {
		return ve, err
	}
	if ve.Multicast, err = required(n, "Multicast", normalizeMulticast); err != nil {
		return ve, err
	}
	ve.SessionTimeout, err = n.durationString("SessionTimeout")
	return ve, err
}

func normalizeResolution(n node) (VideoResolution, error) {
	width, err := n.int("Width")
	if err != nil {
		return VideoResolution{}, err
	}
	height, err := n.int("Height")
	return VideoResolution{Width: width, Height: height}, err
}

func normalizeRateControl(n node) (VideoRateControl, error) {
	var (
		rc  VideoRateControl
		err error
	)
	if rc.FrameRateLimit, err = n.int("FrameRateLimit"); err != nil {
		return rc, err
	}
	if rc.EncodingInterval, err = n.int("EncodingInterval"); err != nil {
		return rc, err
	}
	rc.BitrateLimit, err = n.int("BitrateLimit")
	return rc, err
}

func normalizeMulticast(n node) (MulticastConfiguration, error) {
	var (
		mc  MulticastConfiguration
		err error
	)
	if mc.Address, err = required(n, "Address", normalizeIPAddress); err != nil {
		return mc, err
	}
	if mc.Port, err = n.int("Port"); err != nil {
		return mc, err
	}
	if mc.TTL, err = n.int("TTL"); err != nil {
		return mc, err
	}
	mc.AutoStart, err = n.bool("AutoStart")
	return mc, err
}

// normalizeIPAddress fills only the address field named by Type
func normalizeIPAddress(n node) (IPAddress, error) {
	typ, err := enum(n, "Type", IPv4, IPv6)
	if err != nil {
		return IPAddress{}, err
	}
	addr := IPAddress{Type: typ}
	switch typ {
	case IPv4:
		v, err := n.str("IPv4Address")
		if err != nil {
			return addr, err
		}
		addr.IPv4Address = &v
	case IPv6:
		v, err := n.str("IPv6Address")
		if err != nil {
			return addr, err
		}
		addr.IPv6Address = &v
	}
	return addr, nil
}

func normalizeAudioEncoder(n node) (AudioEncoderConfiguration, error) {
	var (
		ae  AudioEncoderConfiguration
		err error
	)
	if ae.Token, ae.Name, ae.UseCount, err = configEntity(n); err != nil {
		return ae, err
	}
	if ae.Encoding, err = enum(n, "Encoding", AudioEncodingG711, AudioEncodingG726, AudioEncodingAAC); err != nil {
		return ae, err
	}
	if ae.Bitrate, err = n.int("Bitrate"); err != nil {
		return ae, err
	}
	if ae.SampleRate, err = n.int("SampleRate"); err != nil {
		return ae, err
	}
	if ae.Multicast, err = required(n, "Multicast", normalizeMulticast); err != nil {
		return ae, err
	}
	ae.SessionTimeout, err = n.durationString("SessionTimeout")
	return ae, err
}

func normalizeVideoAnalytics(n node) (VideoAnalyticsConfiguration, error) {
	var (
		va  VideoAnalyticsConfiguration
		err error
	)
	if va.Token, va.Name, va.UseCount, err = configEntity(n); err != nil {
		return va, err
	}
	if va.AnalyticsEngineConfiguration, err = required(n, "AnalyticsEngineConfiguration", normalizeAnalyticsEngine); err != nil {
		return va, err
	}
	va.RuleEngineConfiguration, err = required(n, "RuleEngineConfiguration", func(r node) (RuleEngineConfiguration, error) {
		rules, err := mapAll(r.children("Rule"), normalizeConfig)
		return RuleEngineConfiguration{Rule: rules, Extension: r.optExtension("Extension")}, err
	})
	return va, err
}

func normalizeAnalyticsEngine(n node) (AnalyticsEngineConfiguration, error) {
	modules, err := mapAll(n.children("AnalyticsModule"), normalizeConfig)
	return AnalyticsEngineConfiguration{AnalyticsModule: modules, Extension: n.optExtension("Extension")}, err
}

func normalizeConfig(n node) (Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Name, err = n.attr("Name"); err != nil {
		return cfg, err
	}
	if cfg.Type, err = n.attr("Type"); err != nil {
		return cfg, err
	}
	cfg.Parameters, err = mapAll(n.children("Parameters"), normalizeParameter)
	return cfg, err
}

func normalizeParameter(n node) (Parameter, error) {
	var (
		p   Parameter
		err error
	)
	p.SimpleItems, err = mapAll(n.children("SimpleItem"), func(s node) (SimpleItem, error) {
		name, err := s.attr("Name")
		if err != nil {
			return SimpleItem{}, err
		}
		value, err := s.attr("Value")
		return SimpleItem{Name: name, Value: value}, err
	})
	if err != nil {
		return p, err
	}
	p.ElementItems, err = mapAll(n.children("ElementItem"), func(e node) (ElementItem, error) {
		name, err := e.attr("Name")
		if err != nil {
			return ElementItem{}, err
		}
		item := ElementItem{Name: name}
		if len(e.el.ChildElements()) > 0 {
			content := e.innerXML()
			item.Content = &content
		}
		return item, nil
	})
	if err != nil {
		return p, err
	}
	p.Extension = n.optExtension("Extension")
	return p, nil
}

func normalizePTZConfiguration(n node) (PTZConfiguration, error) {
	var (
		ptz PTZConfiguration
		err error
	)
	if ptz.Token, ptz.Name, ptz.UseCount, err = configEntity(n); err != nil {
		return ptz, err
	}
	if ptz.MoveRamp, err = n.optIntAttr("MoveRamp"); err != nil {
		return ptz, err
	}
	if ptz.PresetRamp, err = n.optIntAttr("PresetRamp"); err != nil {
		return ptz, err
	}
	if ptz.PresetTourRamp, err = n.optIntAttr("PresetTourRamp"); err != nil {
		return ptz, err
	}
	if ptz.NodeToken, err = n.str("NodeToken"); err != nil {
		return ptz, err
	}

	ptz.DefaultAbsolutePanTiltPositionSpace = n.optStr("DefaultAbsolutePantTiltPositionSpace")
	ptz.DefaultAbsoluteZoomPositionSpace = n.optStr("DefaultAbsoluteZoomPositionSpace")
	ptz.DefaultRelativePanTiltTranslationSpace = n.optStr("DefaultRelativePanTiltTranslationSpace")
	ptz.DefaultRelativeZoomTranslationSpace = n.optStr("DefaultRelativeZoomTranslationSpace")
	ptz.DefaultContinuousPanTiltVelocitySpace = n.optStr("DefaultContinuousPanTiltVelocitySpace")
	ptz.DefaultContinuousZoomVelocitySpace = n.optStr("DefaultContinuousZoomVelocitySpace")

	if ptz.DefaultPTZSpeed, err = optional(n, "DefaultPTZSpeed", normalizePTZSpeed); err != nil {
		return ptz, err
	}
	if ptz.DefaultPTZTimeout, err = n.optDurationSeconds("DefaultPTZTimeout"); err != nil {
		return ptz, err
	}
	ptz.PanTiltLimits, err = optional(n, "PanTiltLimits", func(l node) (PanTiltLimits, error) {
		r, err := required(l, "Range", normalizeSpace2D)
		return PanTiltLimits{Range: r}, err
	})
	if err != nil {
		return ptz, err
	}
	ptz.ZoomLimits, err = optional(n, "ZoomLimits", func(l node) (ZoomLimits, error) {
		r, err := required(l, "Range", normalizeSpace1D)
		return ZoomLimits{Range: r}, err
	})
	if err != nil {
		return ptz, err
	}
	ptz.Extension, err = optional(n, "Extension", normalizePTZExtension)
	return ptz, err
}

func normalizePTZSpeed(n node) (PTZSpeed, error) {
	var (
		speed PTZSpeed
		err   error
	)
	speed.PanTilt, err = optional(n, "PanTilt", func(v node) (Vector2D, error) {
		x, err := v.floatAttr("x")
		if err != nil {
			return Vector2D{}, err
		}
		y, err := v.floatAttr("y")
		return Vector2D{X: x, Y: y, Space: v.optAttr("space")}, err
	})
	if err != nil {
		return speed, err
	}
	speed.Zoom, err = optional(n, "Zoom", func(v node) (Vector1D, error) {
		x, err := v.floatAttr("x")
		return Vector1D{X: x, Space: v.optAttr("space")}, err
	})
	return speed, err
}

func normalizeFloatRange(n node) (FloatRange, error) {
	lo, err := n.float("Min")
	if err != nil {
		return FloatRange{}, err
	}
	hi, err := n.float("Max")
	return FloatRange{Min: lo, Max: hi}, err
}

func normalizeSpace2D(n node) (Space2DDescription, error) {
	var (
		s   Space2DDescription
		err error
	)
	if s.URI, err = n.str("URI"); err != nil {
		return s, err
	}
	if s.XRange, err = required(n, "XRange", normalizeFloatRange); err != nil {
		return s, err
	}
	s.YRange, err = required(n, "YRange", normalizeFloatRange)
	return s, err
}

func normalizeSpace1D(n node) (Space1DDescription, error) {
	var (
		s   Space1DDescription
		err error
	)
	if s.URI, err = n.str("URI"); err != nil {
		return s, err
	}
	s.XRange, err = required(n, "XRange", normalizeFloatRange)
	return s, err
}

func normalizePTZExtension(n node) (PTZConfigurationExtension, error) {
	dir, err := optional(n, "PTControlDirection", func(d node) (PTControlDirection, error) {
		var (
			pt  PTControlDirection
			err error
		)
		pt.EFlip, err = optional(d, "EFlip", func(f node) (EFlip, error) {
			mode, err := enum(f, "Mode", EFlipOff, EFlipOn, EFlipExtended)
			return EFlip{Mode: mode}, err
		})
		if err != nil {
			return pt, err
		}
		pt.Reverse, err = optional(d, "Reverse", func(r node) (Reverse, error) {
			mode, err := enum(r, "Mode", ReverseOff, ReverseOn, ReverseAuto, ReverseExtended)
			return Reverse{Mode: mode}, err
		})
		pt.Extension = d.optExtension("Extension")
		return pt, err
	})
	return PTZConfigurationExtension{PTControlDirection: dir, Extension: n.optExtension("Extension")}, err
}

func normalizeMetadata(n node) (MetadataConfiguration, error) {
	var (
		md  MetadataConfiguration
		err error
	)
	if md.Token, md.Name, md.UseCount, err = configEntity(n); err != nil {
		return md, err
	}
	md.CompressionType = n.optAttr("CompressionType")
	if md.GeoLocation, err = n.optBoolAttr("GeoLocation"); err != nil {
		return md, err
	}
	if md.ShapePolygon, err = n.optBoolAttr("ShapePolygon"); err != nil {
		return md, err
	}
	md.PTZStatus, err = optional(n, "PTZStatus", func(f node) (PTZFilter, error) {
		status, err := f.bool("Status")
		if err != nil {
			return PTZFilter{}, err
		}
		position, err := f.bool("Position")
		return PTZFilter{Status: status, Position: position}, err
	})
	if err != nil {
		return md, err
	}
	md.Events, err = optional(n, "Events", func(e node) (EventSubscription, error) {
		return EventSubscription{
			Filter:             e.optExtension("Filter"),
			SubscriptionPolicy: e.optExtension("SubscriptionPolicy"),
		}, nil
	})
	if err != nil {
		return md, err
	}
	if md.Analytics, err = n.optBool("Analytics"); err != nil {
		return md, err
	}
	if md.Multicast, err = optional(n, "Multicast", normalizeMulticast); err != nil {
		return md, err
	}
	if md.SessionTimeout, err = n.durationString("SessionTimeout"); err != nil {
		return md, err
	}
	if md.AnalyticsEngineConfiguration, err = optional(n, "AnalyticsEngineConfiguration", normalizeAnalyticsEngine); err != nil {
		return md, err
	}
	md.Extension = n.optExtension("Extension")
	return md, nil
}

func normalizeProfileExtension(n node) (ProfileExtension, error) {
	var (
		ext ProfileExtension
		err error
	)
	ext.AudioOutputConfiguration, err = optional(n, "AudioOutputConfiguration", func(a node) (AudioOutputConfiguration, error) {
		var (
			ao  AudioOutputConfiguration
			err error
		)
		if ao.Token, ao.Name, ao.UseCount, err = configEntity(a); err != nil {
			return ao, err
		}
		if ao.OutputToken, err = a.str("OutputToken"); err != nil {
			return ao, err
		}
		ao.SendPrimacy = a.optStr("SendPrimacy")
		ao.OutputLevel, err = a.int("OutputLevel")
		return ao, err
	})
	if err != nil {
		return ext, err
	}
	ext.AudioDecoderConfiguration, err = optional(n, "AudioDecoderConfiguration", func(a node) (AudioDecoderConfiguration, error) {
		var (
			ad  AudioDecoderConfiguration
			err error
		)
		ad.Token, ad.Name, ad.UseCount, err = configEntity(a)
		return ad, err
	})
	ext.Extension = n.optExtension("Extension")
	return ext, err
}
