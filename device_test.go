package onvif

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDeviceInformation(t *testing.T) {
	dev := newFakeDevice(t, map[string]string{
		"GetDeviceInformation": `<tds:GetDeviceInformationResponse>
<tds:Manufacturer>Acme</tds:Manufacturer>
<tds:Model>X1</tds:Model>
<tds:FirmwareVersion>1.0</tds:FirmwareVersion>
<tds:SerialNumber>S</tds:SerialNumber>
<tds:HardwareId>H</tds:HardwareId>
</tds:GetDeviceInformationResponse>`,
	})

	client, err := NewDeviceClient(context.Background(), dev.target(), testSettings())
	require.NoError(t, err)

	info, err := client.GetDeviceInformation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DeviceInformation{
		Manufacturer:    "Acme",
		Model:           "X1",
		FirmwareVersion: "1.0",
		SerialNumber:    "S",
		HardwareID:      "H",
	}, info)
}

func TestDeviceInformationMissingField(t *testing.T) {
	n := parseNode(t, `<tds:GetDeviceInformationResponse>
<tds:Manufacturer>Acme</tds:Manufacturer><tds:Model>X1</tds:Model>
<tds:FirmwareVersion>1.0</tds:FirmwareVersion><tds:SerialNumber>S</tds:SerialNumber>
</tds:GetDeviceInformationResponse>`)

	_, err := normalizeDeviceInformation(n)
	assert.ErrorContains(t, err, "HardwareId")
}

func TestNormalizeSystemDateTime(t *testing.T) {
	n := parseNode(t, `<tds:GetSystemDateAndTimeResponse><tds:SystemDateAndTime>
<tt:DateTimeType>NTP</tt:DateTimeType>
<tt:DaylightSavings>true</tt:DaylightSavings>
<tt:TimeZone><tt:TZ>CET-1CEST,M3.5.0,M10.5.0/3</tt:TZ></tt:TimeZone>
<tt:UTCDateTime>
  <tt:Time><tt:Hour>9</tt:Hour><tt:Minute>30</tt:Minute><tt:Second>5</tt:Second></tt:Time>
  <tt:Date><tt:Year>2024</tt:Year><tt:Month>6</tt:Month><tt:Day>1</tt:Day></tt:Date>
</tt:UTCDateTime>
</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`)

	dt, err := normalizeSystemDateTimeResponse(n)
	require.NoError(t, err)
	assert.Equal(t, DateTimeNTP, dt.DateTimeType)
	assert.True(t, dt.DaylightSavings)
	require.NotNil(t, dt.TimeZone)
	assert.Equal(t, "CET-1CEST,M3.5.0,M10.5.0/3", *dt.TimeZone)
	require.NotNil(t, dt.UTCDateTime)
	assert.Equal(t, DateTime{Date: Date{2024, 6, 1}, Time: Time{9, 30, 5}}, *dt.UTCDateTime)
	assert.Nil(t, dt.LocalDateTime)
}

func TestNormalizeSystemDateTimeRejectsUnknownType(t *testing.T) {
	n := parseNode(t, `<tds:GetSystemDateAndTimeResponse><tds:SystemDateAndTime>
<tt:DateTimeType>GPS</tt:DateTimeType><tt:DaylightSavings>false</tt:DaylightSavings>
</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`)

	_, err := normalizeSystemDateTimeResponse(n)
	assert.Error(t, err)
}

func TestNormalizeSystemUris(t *testing.T) {
	n := parseNode(t, `<tds:GetSystemUrisResponse>
<tds:SystemLogUris>
  <tt:SystemLog><tt:Type>System</tt:Type><tt:Uri>http://cam/log/system</tt:Uri></tt:SystemLog>
  <tt:SystemLog><tt:Type>Access</tt:Type><tt:Uri>http://cam/log/access</tt:Uri></tt:SystemLog>
</tds:SystemLogUris>
<tds:SupportInfoUri>http://cam/support</tds:SupportInfoUri>
</tds:GetSystemUrisResponse>`)

	uris, err := normalizeSystemUris(n)
	require.NoError(t, err)
	assert.Equal(t, []SystemLogURI{
		{Type: SystemLogSystem, URI: "http://cam/log/system"},
		{Type: SystemLogAccess, URI: "http://cam/log/access"},
	}, uris.SystemLogURIs)
	require.NotNil(t, uris.SupportInfoURI)
	assert.Equal(t, "http://cam/support", *uris.SupportInfoURI)
	assert.Nil(t, uris.SystemBackupURI)
}

func TestNormalizeSystemUrisEmpty(t *testing.T) {
	uris, err := normalizeSystemUris(parseNode(t, `<tds:GetSystemUrisResponse/>`))
	require.NoError(t, err)

	out, err := json.Marshal(uris)
	require.NoError(t, err)
	assert.JSONEq(t, `{"system_log_uris":[],"support_info_uri":null,"system_backup_uri":null}`, string(out))
}

func TestNormalizeUsers(t *testing.T) {
	n := parseNode(t, `<tds:GetUsersResponse>
<tds:User><tt:Username>admin</tt:Username><tt:UserLevel>Administrator</tt:UserLevel></tds:User>
<tds:User><tt:Username>viewer</tt:Username><tt:UserLevel>User</tt:UserLevel></tds:User>
</tds:GetUsersResponse>`)

	users, err := normalizeUsers(n)
	require.NoError(t, err)
	assert.Equal(t, []User{
		{Username: "admin", UserLevel: UserLevelAdministrator},
		{Username: "viewer", UserLevel: UserLevelUser},
	}, users.Users)

	_, err = normalizeUsers(parseNode(t, `<tds:GetUsersResponse>
<tds:User><tt:Username>x</tt:Username><tt:UserLevel>Root</tt:UserLevel></tds:User>
</tds:GetUsersResponse>`))
	assert.Error(t, err)
}

func TestNormalizeHostnameWithoutName(t *testing.T) {
	host, err := normalizeHostnameResponse(parseNode(t, `<tds:GetHostnameResponse>
<tds:HostnameInformation><tt:FromDHCP>true</tt:FromDHCP></tds:HostnameInformation>
</tds:GetHostnameResponse>`))
	require.NoError(t, err)
	assert.True(t, host.FromDHCP)
	assert.Nil(t, host.Name)
}
