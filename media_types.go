package onvif

// RotateMode is the video source rotation mode
type RotateMode string

const (
	RotateOff  RotateMode = "OFF"
	RotateOn   RotateMode = "ON"
	RotateAuto RotateMode = "AUTO"
)

// VideoEncoding is a media (ver10) video codec
type VideoEncoding string

const (
	VideoEncodingJPEG  VideoEncoding = "JPEG"
	VideoEncodingMPEG4 VideoEncoding = "MPEG4"
	VideoEncodingH264  VideoEncoding = "H264"
)

// AudioEncoding is a media (ver10) audio codec
type AudioEncoding string

const (
	AudioEncodingG711 AudioEncoding = "G711"
	AudioEncodingG726 AudioEncoding = "G726"
	AudioEncodingAAC  AudioEncoding = "AAC"
)

// SceneOrientationMode tells whether the scene orientation is detected automatically
type SceneOrientationMode string

const (
	SceneOrientationManual SceneOrientationMode = "MANUAL"
	SceneOrientationAuto   SceneOrientationMode = "AUTO"
)

// Mpeg4Profile is an MPEG-4 codec profile
type Mpeg4Profile string

const (
	Mpeg4ProfileSP  Mpeg4Profile = "SP"
	Mpeg4ProfileASP Mpeg4Profile = "ASP"
)

// H264Profile is an H.264 codec profile
type H264Profile string

const (
	H264ProfileBaseline H264Profile = "Baseline"
	H264ProfileMain     H264Profile = "Main"
	H264ProfileExtended H264Profile = "Extended"
	H264ProfileHigh     H264Profile = "High"
)

// EFlipMode is the electronic flip mode of a PTZ unit
type EFlipMode string

const (
	EFlipOff      EFlipMode = "OFF"
	EFlipOn       EFlipMode = "ON"
	EFlipExtended EFlipMode = "Extended"
)

// ReverseMode is the pan/tilt reverse mode of a PTZ unit
type ReverseMode string

const (
	ReverseOff      ReverseMode = "OFF"
	ReverseOn       ReverseMode = "ON"
	ReverseAuto     ReverseMode = "AUTO"
	ReverseExtended ReverseMode = "Extended"
)

// AudioOutput is one audio output of the device
type AudioOutput struct {
	Token string `json:"token"`
}

// AudioOutputs lists the device audio outputs
type AudioOutputs struct {
	AudioOutputs []AudioOutput `json:"audio_outputs"`
}

// Bounds is the video source window
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rotate is the video source rotation
type Rotate struct {
	Mode      RotateMode `json:"mode"`
	Degree    *int       `json:"degree"`
	Extension *string    `json:"extension"`
}

// LensOffset is the optical center offset
type LensOffset struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// LensProjection maps an angle to a radius
type LensProjection struct {
	Angle         float64  `json:"angle"`
	Radius        float64  `json:"radius"`
	Transmittance *float64 `json:"transmittance"`
}

// LensDescription describes a lens geometry
type LensDescription struct {
	FocalLength *float64         `json:"focal_length"`
	Offset      LensOffset       `json:"offset"`
	Projection  []LensProjection `json:"projection"`
	XFactor     float64          `json:"x_factor"`
}

// SceneOrientation is the camera mounting orientation
type SceneOrientation struct {
	Mode        SceneOrientationMode `json:"mode"`
	Orientation *string              `json:"orientation"`
}

// VideoSourceConfigurationExtension2 holds lens and orientation data
type VideoSourceConfigurationExtension2 struct {
	LensDescription  []LensDescription `json:"lens_description"`
	SceneOrientation *SceneOrientation `json:"scene_orientation"`
}

// VideoSourceConfigurationExtension holds rotation data
type VideoSourceConfigurationExtension struct {
	Rotate    *Rotate                             `json:"rotate"`
	Extension *VideoSourceConfigurationExtension2 `json:"extension"`
}

// VideoSourceConfiguration binds a video source to a window
type VideoSourceConfiguration struct {
	Token       string                             `json:"token"`
	Name        string                             `json:"name"`
	UseCount    int                                `json:"use_count"`
	SourceToken string                             `json:"source_token"`
	ViewMode    *string                            `json:"view_mode"`
	Bounds      Bounds                             `json:"bounds"`
	Extension   *VideoSourceConfigurationExtension `json:"extension"`
}

// AudioSourceConfiguration binds an audio source
type AudioSourceConfiguration struct {
	Token       string `json:"token"`
	Name        string `json:"name"`
	UseCount    int    `json:"use_count"`
	SourceToken string `json:"source_token"`
}

// VideoRateControl limits encoder output
type VideoRateControl struct {
	FrameRateLimit   int `json:"frame_rate_limit"`
	EncodingInterval int `json:"encoding_interval"`
	BitrateLimit     int `json:"bitrate_limit"`
}

// Mpeg4Configuration are the MPEG-4 codec parameters
type Mpeg4Configuration struct {
	GovLength    int          `json:"gov_length"`
	Mpeg4Profile Mpeg4Profile `json:"mpeg4_profile"`
}

// H264Configuration are the H.264 codec parameters
type H264Configuration struct {
	GovLength   int         `json:"gov_length"`
	H264Profile H264Profile `json:"h264_profile"`
}

// VideoEncoderConfiguration is a media (ver10) video encoder
type VideoEncoderConfiguration struct {
	Token               string                 `json:"token"`
	Name                string                 `json:"name"`
	UseCount            int                    `json:"use_count"`
	Encoding            VideoEncoding          `json:"encoding"`
	Resolution          VideoResolution        `json:"resolution"`
	Quality             float64                `json:"quality"`
	Multicast           MulticastConfiguration `json:"multicast"`
	SessionTimeout      string                 `json:"session_timeout"`
	GuaranteedFrameRate *bool                  `json:"guaranteed_frame_rate"`
	RateControl         *VideoRateControl      `json:"rate_control"`
	MPEG4               *Mpeg4Configuration    `json:"mpeg4"`
	H264                *H264Configuration     `json:"h264"`
}

// AudioEncoderConfiguration is a media (ver10) audio encoder
type AudioEncoderConfiguration struct {
	Token          string                 `json:"token"`
	Name           string                 `json:"name"`
	UseCount       int                    `json:"use_count"`
	Encoding       AudioEncoding          `json:"encoding"`
	Bitrate        int                    `json:"bitrate"`
	SampleRate     int                    `json:"sample_rate"`
	Multicast      MulticastConfiguration `json:"multicast"`
	SessionTimeout string                 `json:"session_timeout"`
}

// SimpleItem is a name/value analytics parameter
type SimpleItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ElementItem is a named analytics parameter with structured content
type ElementItem struct {
	Name    string  `json:"name"`
	Content *string `json:"content"`
}

// Parameter is one analytics parameter list
type Parameter struct {
	SimpleItems  []SimpleItem  `json:"simple_items"`
	ElementItems []ElementItem `json:"element_items"`
	Extension    *string       `json:"extension"`
}

// Config is an analytics module or rule
type Config struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Parameters []Parameter `json:"parameters"`
}

// AnalyticsEngineConfiguration lists analytics modules
type AnalyticsEngineConfiguration struct {
	AnalyticsModule []Config `json:"analytics_module"`
	Extension       *string  `json:"extension"`
}

// RuleEngineConfiguration lists analytics rules
type RuleEngineConfiguration struct {
	Rule      []Config `json:"rule"`
	Extension *string  `json:"extension"`
}

// VideoAnalyticsConfiguration pairs the analytics and rule engines
type VideoAnalyticsConfiguration struct {
	Token                        string                       `json:"token"`
	Name                         string                       `json:"name"`
	UseCount                     int                          `json:"use_count"`
	AnalyticsEngineConfiguration AnalyticsEngineConfiguration `json:"analytics_engine_configuration"`
	RuleEngineConfiguration      RuleEngineConfiguration      `json:"rule_engine_configuration"`
}

// Vector2D is a pan/tilt value in a coordinate space
type Vector2D struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Space *string `json:"space"`
}

// Vector1D is a zoom value in a coordinate space
type Vector1D struct {
	X     float64 `json:"x"`
	Space *string `json:"space"`
}

// PTZSpeed is a default pan/tilt and zoom speed
type PTZSpeed struct {
	PanTilt *Vector2D `json:"pan_tilt"`
	Zoom    *Vector1D `json:"zoom"`
}

// FloatRange is an inclusive range
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Space2DDescription is a two dimensional coordinate space
type Space2DDescription struct {
	URI    string     `json:"uri"`
	XRange FloatRange `json:"x_range"`
	YRange FloatRange `json:"y_range"`
}

// Space1DDescription is a one dimensional coordinate space
type Space1DDescription struct {
	URI    string     `json:"uri"`
	XRange FloatRange `json:"x_range"`
}

// PanTiltLimits restricts pan/tilt movement
type PanTiltLimits struct {
	Range Space2DDescription `json:"range"`
}

// ZoomLimits restricts zoom movement
type ZoomLimits struct {
	Range Space1DDescription `json:"range"`
}

// EFlip is the electronic flip setting
type EFlip struct {
	Mode EFlipMode `json:"mode"`
}

// Reverse is the pan/tilt reverse setting
type Reverse struct {
	Mode ReverseMode `json:"mode"`
}

// PTControlDirection holds pan/tilt direction settings
type PTControlDirection struct {
	EFlip     *EFlip   `json:"e_flip"`
	Reverse   *Reverse `json:"reverse"`
	Extension *string  `json:"extension"`
}

// PTZConfigurationExtension holds PTZ direction settings
type PTZConfigurationExtension struct {
	PTControlDirection *PTControlDirection `json:"pt_control_direction"`
	Extension          *string             `json:"extension"`
}

// PTZConfiguration binds a PTZ node to a profile
type PTZConfiguration struct {
	Token                                  string                     `json:"token"`
	Name                                   string                     `json:"name"`
	UseCount                               int                        `json:"use_count"`
	NodeToken                              string                     `json:"node_token"`
	MoveRamp                               *int                       `json:"move_ramp"`
	PresetRamp                             *int                       `json:"preset_ramp"`
	PresetTourRamp                         *int                       `json:"preset_tour_ramp"`
	DefaultAbsolutePanTiltPositionSpace    *string                    `json:"default_absolute_pan_tilt_position_space"`
	DefaultAbsoluteZoomPositionSpace       *string                    `json:"default_absolute_zoom_position_space"`
	DefaultRelativePanTiltTranslationSpace *string                    `json:"default_relative_pan_tilt_translation_space"`
	DefaultRelativeZoomTranslationSpace    *string                    `json:"default_relative_zoom_translation_space"`
	DefaultContinuousPanTiltVelocitySpace  *string                    `json:"default_continuous_pan_tilt_velocity_space"`
	DefaultContinuousZoomVelocitySpace     *string                    `json:"default_continuous_zoom_velocity_space"`
	DefaultPTZSpeed                        *PTZSpeed                  `json:"default_ptz_speed"`
	DefaultPTZTimeout                      *float64                   `json:"default_ptz_timeout"`
	PanTiltLimits                          *PanTiltLimits             `json:"pan_tilt_limits"`
	ZoomLimits                             *ZoomLimits                `json:"zoom_limits"`
	Extension                              *PTZConfigurationExtension `json:"extension"`
}

// PTZFilter selects the PTZ data included in metadata
type PTZFilter struct {
	Status   bool `json:"status"`
	Position bool `json:"position"`
}

// EventSubscription selects the events included in metadata
type EventSubscription struct {
	Filter             *string `json:"filter"`
	SubscriptionPolicy *string `json:"subscription_policy"`
}

// MetadataConfiguration describes the metadata stream
type MetadataConfiguration struct {
	Token                        string                        `json:"token"`
	Name                         string                        `json:"name"`
	UseCount                     int                           `json:"use_count"`
	CompressionType              *string                       `json:"compression_type"`
	GeoLocation                  *bool                         `json:"geo_location"`
	ShapePolygon                 *bool                         `json:"shape_polygon"`
	SessionTimeout               string                        `json:"session_timeout"`
	PTZStatus                    *PTZFilter                    `json:"ptz_status"`
	Events                       *EventSubscription            `json:"events"`
	Analytics                    *bool                         `json:"analytics"`
	Multicast                    *MulticastConfiguration       `json:"multicast"`
	AnalyticsEngineConfiguration *AnalyticsEngineConfiguration `json:"analytics_engine_configuration"`
	Extension                    *string                       `json:"extension"`
}

// AudioOutputConfiguration binds an audio output
type AudioOutputConfiguration struct {
	Token       string  `json:"token"`
	Name        string  `json:"name"`
	UseCount    int     `json:"use_count"`
	OutputToken string  `json:"output_token"`
	SendPrimacy *string `json:"send_primacy"`
	OutputLevel int     `json:"output_level"`
}

// AudioDecoderConfiguration is an audio decoder entity
type AudioDecoderConfiguration struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	UseCount int    `json:"use_count"`
}

// ProfileExtension holds the audio backchannel configurations
type ProfileExtension struct {
	AudioOutputConfiguration  *AudioOutputConfiguration  `json:"audio_output_configuration"`
	AudioDecoderConfiguration *AudioDecoderConfiguration `json:"audio_decoder_configuration"`
	Extension                 *string                    `json:"extension"`
}

// MediaProfile is a media (ver10) profile and its configurations
type MediaProfile struct {
	Token                       string                       `json:"token"`
	Fixed                       bool                         `json:"fixed"`
	Name                        string                       `json:"name"`
	VideoSourceConfiguration    *VideoSourceConfiguration    `json:"video_source_configuration"`
	AudioSourceConfiguration    *AudioSourceConfiguration    `json:"audio_source_configuration"`
	VideoEncoderConfiguration   *VideoEncoderConfiguration   `json:"video_encoder_configuration"`
	AudioEncoderConfiguration   *AudioEncoderConfiguration   `json:"audio_encoder_configuration"`
	VideoAnalyticsConfiguration *VideoAnalyticsConfiguration `json:"video_analytics_configuration"`
	PTZConfiguration            *PTZConfiguration            `json:"ptz_configuration"`
	MetadataConfiguration       *MetadataConfiguration       `json:"metadata_configuration"`
	Extension                   *ProfileExtension            `json:"extension"`
}

// MediaProfiles lists the device media profiles
type MediaProfiles struct {
	Profiles []MediaProfile `json:"profiles"`
}
