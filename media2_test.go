package onvif

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVideoEncoderConfigurations(t *testing.T) {
	dev := newFakeDevice(t, map[string]string{
		"GetVideoEncoderConfigurations": `<tr2:GetVideoEncoderConfigurationsResponse>
<tr2:Configurations token="enc_main" GovLength="50" Profile="Main">
  <tt:Name>Main</tt:Name><tt:UseCount>1</tt:UseCount>
  <tt:Encoding>H265</tt:Encoding>
  <tt:Resolution><tt:Width>2560</tt:Width><tt:Height>1440</tt:Height></tt:Resolution>
  <tt:RateControl ConstantBitRate="true"><tt:FrameRateLimit>12.5</tt:FrameRateLimit><tt:BitrateLimit>6144</tt:BitrateLimit></tt:RateControl>
  <tt:Quality>5</tt:Quality>
</tr2:Configurations>
<tr2:Configurations token="enc_sub">
  <tt:Name>Sub</tt:Name><tt:UseCount>1</tt:UseCount>
  <tt:Encoding>JPEG</tt:Encoding>
  <tt:Resolution><tt:Width>640</tt:Width><tt:Height>360</tt:Height></tt:Resolution>
  <tt:Multicast>
    <tt:Address><tt:Type>IPv4</tt:Type><tt:IPv4Address>239.1.1.1</tt:IPv4Address></tt:Address>
    <tt:Port>0</tt:Port><tt:TTL>1</tt:TTL><tt:AutoStart>false</tt:AutoStart>
  </tt:Multicast>
  <tt:Quality>3</tt:Quality>
</tr2:Configurations>
</tr2:GetVideoEncoderConfigurationsResponse>`,
	})

	client, err := NewMedia2Client(context.Background(), dev.target(), testSettings())
	require.NoError(t, err)

	configs, err := client.GetVideoEncoderConfigurations(context.Background())
	require.NoError(t, err)
	require.Len(t, configs.Configurations, 2)

	main := configs.Configurations[0]
	assert.Equal(t, "enc_main", main.Token)
	assert.Equal(t, "H265", main.Encoding)
	assert.Equal(t, VideoResolution{Width: 2560, Height: 1440}, main.Resolution)
	require.NotNil(t, main.GovLength)
	assert.Equal(t, 50, *main.GovLength)
	require.NotNil(t, main.Profile)
	assert.Equal(t, "Main", *main.Profile)
	assert.Nil(t, main.GuaranteedFrameRate)
	require.NotNil(t, main.RateControl)
	require.NotNil(t, main.RateControl.ConstantBitRate)
	assert.True(t, *main.RateControl.ConstantBitRate)
	assert.InDelta(t, 12.5, main.RateControl.FrameRateLimit, 1e-9)
	assert.Equal(t, 6144, main.RateControl.BitrateLimit)
	assert.Nil(t, main.Multicast)

	sub := configs.Configurations[1]
	assert.Nil(t, sub.RateControl)
	assert.Nil(t, sub.GovLength)
	require.NotNil(t, sub.Multicast)
	assert.Equal(t, "239.1.1.1", *sub.Multicast.Address.IPv4Address)

	calls := dev.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/onvif/media_service", calls[0].Path)
	assert.Equal(t, NamespaceMedia2+"/GetVideoEncoderConfigurations", calls[0].Action)
	assert.Equal(t, NamespaceMedia2, calls[0].Request.NamespaceURI())
}

func TestGetVideoEncoderConfigurationsEmpty(t *testing.T) {
	configs, err := normalizeVideoEncoder2Configurations(parseNode(t, `<tr2:GetVideoEncoderConfigurationsResponse/>`))
	require.NoError(t, err)
	assert.NotNil(t, configs.Configurations)
	assert.Empty(t, configs.Configurations)
}

func TestGetOSDs(t *testing.T) {
	dev := newFakeDevice(t, map[string]string{
		"GetOSDs": `<tr2:GetOSDsResponse>
<tr2:OSDs token="osd_1"><tt:VideoSourceConfigurationToken>vsc_1</tt:VideoSourceConfigurationToken><tt:Type>Text</tt:Type></tr2:OSDs>
<tr2:OSDs token="osd_2"><tt:VideoSourceConfigurationToken>vsc_1</tt:VideoSourceConfigurationToken><tt:Type>Image</tt:Type></tr2:OSDs>
</tr2:GetOSDsResponse>`,
	})

	client, err := NewMedia2Client(context.Background(), dev.target(), testSettings())
	require.NoError(t, err)

	osds, err := client.GetOSDs(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []OSD{
		{Token: "osd_1", VideoSourceToken: "vsc_1", Type: OSDText},
		{Token: "osd_2", VideoSourceToken: "vsc_1", Type: OSDImage},
	}, osds.OSDs)

	_, err = client.GetOSDs(context.Background(), "vsc_1")
	require.NoError(t, err)

	calls := dev.Calls()
	require.Len(t, calls, 2)
	assert.Nil(t, calls[0].Request.SelectElement("ConfigurationToken"))
	assert.Equal(t, "vsc_1", textAt(calls[1].Request, "ConfigurationToken"))
}

func TestGetOSDsRejectsUnknownType(t *testing.T) {
	_, err := normalizeOSDs(parseNode(t, `<tr2:GetOSDsResponse>
<tr2:OSDs token="osd_1"><tt:VideoSourceConfigurationToken>v</tt:VideoSourceConfigurationToken><tt:Type>Banner</tt:Type></tr2:OSDs>
</tr2:GetOSDsResponse>`))
	assert.ErrorContains(t, err, "Banner")
}
