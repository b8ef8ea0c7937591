package onvif

// Optional fields are pointers or slices and carry no omitempty, so an
// absent value serializes as an explicit null.

// DeviceInformation is the device identity
type DeviceInformation struct {
	Manufacturer    string `json:"manufacturer"`
	Model           string `json:"model"`
	FirmwareVersion string `json:"firmware_version"`
	SerialNumber    string `json:"serial_number"`
	HardwareID      string `json:"hardware_id"`
}

// DateTimeType tells whether the clock is set manually or from NTP
type DateTimeType string

const (
	DateTimeManual DateTimeType = "Manual"
	DateTimeNTP    DateTimeType = "NTP"
)

// Date is a calendar date as reported by the device
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Time is a wall clock time as reported by the device
type Time struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// DateTime pairs a date and a time
type DateTime struct {
	Date Date `json:"date"`
	Time Time `json:"time"`
}

// SystemDateTime is the device clock configuration
type SystemDateTime struct {
	DateTimeType    DateTimeType `json:"date_time_type"`
	DaylightSavings bool         `json:"daylight_savings"`
	TimeZone        *string      `json:"time_zone"`
	UTCDateTime     *DateTime    `json:"utc_date_time"`
	LocalDateTime   *DateTime    `json:"local_date_time"`
}

// SystemLogType distinguishes system and access logs
type SystemLogType string

const (
	SystemLogSystem SystemLogType = "System"
	SystemLogAccess SystemLogType = "Access"
)

// SystemLogURI locates one downloadable log
type SystemLogURI struct {
	Type SystemLogType `json:"type"`
	URI  string        `json:"uri"`
}

// SystemUris are the device's log, support info and backup URIs
type SystemUris struct {
	SystemLogURIs   []SystemLogURI `json:"system_log_uris"`
	SupportInfoURI  *string        `json:"support_info_uri"`
	SystemBackupURI *string        `json:"system_backup_uri"`
}

// Hostname is the device hostname and its origin
type Hostname struct {
	FromDHCP bool    `json:"from_dhcp"`
	Name     *string `json:"name"`
}

// UserLevel represents the access level for an ONVIF user
type UserLevel string

const (
	UserLevelAdministrator UserLevel = "Administrator"
	UserLevelOperator      UserLevel = "Operator"
	UserLevelUser          UserLevel = "User"
	UserLevelAnonymous     UserLevel = "Anonymous"
	UserLevelExtended      UserLevel = "Extended"
)

// User represents an ONVIF user account
type User struct {
	Username  string    `json:"username"`
	UserLevel UserLevel `json:"user_level"`
}

// Users lists the device accounts
type Users struct {
	Users []User `json:"users"`
}

// IPType discriminates IPv4 from IPv6 addresses
type IPType string

const (
	IPv4 IPType = "IPv4"
	IPv6 IPType = "IPv6"
)

// IPAddress holds exactly one of IPv4Address or IPv6Address, per Type
type IPAddress struct {
	Type        IPType  `json:"type"`
	IPv4Address *string `json:"ipv4_address"`
	IPv6Address *string `json:"ipv6_address"`
}

// MulticastConfiguration is the multicast streaming setup of an encoder
type MulticastConfiguration struct {
	Address   IPAddress `json:"address"`
	Port      int       `json:"port"`
	TTL       int       `json:"ttl"`
	AutoStart bool      `json:"auto_start"`
}

// VideoResolution is a frame size in pixels
type VideoResolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReplayURI is the stream address of a recording
type ReplayURI struct {
	URI string `json:"uri"`
}

// MediaURI is a stream address and its validity
type MediaURI struct {
	URI                 string `json:"uri"`
	InvalidAfterConnect bool   `json:"invalid_after_connect"`
	InvalidAfterReboot  bool   `json:"invalid_after_reboot"`
	Timeout             string `json:"timeout"`
}
