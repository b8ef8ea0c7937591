package onvif

import (
	"context"
)

// DeviceClient exposes the device management capability
type DeviceClient struct {
	baseClient
}

// NewDeviceClient creates a device management client bound to target
func NewDeviceClient(ctx context.Context, target ConnectionTarget, settings Settings) (*DeviceClient, error) {
	base, err := connect(ctx, CapabilityDevice, target, settings)
	if err != nil {
		return nil, err
	}
	return &DeviceClient{baseClient: *base}, nil
}

func (c *DeviceClient) base() *baseClient {
	if c == nil {
		return nil
	}
	return &c.baseClient
}

// GetDeviceInformation fetches the device identity
func (c *DeviceClient) GetDeviceInformation(ctx context.Context) (DeviceInformation, error) {
	return call(ctx, c.base(), "GetDeviceInformation", nil, normalizeDeviceInformation)
}

// GetSystemDateAndTime fetches the device clock and timezone
func (c *DeviceClient) GetSystemDateAndTime(ctx context.Context) (SystemDateTime, error) {
	return call(ctx, c.base(), "GetSystemDateAndTime", nil, normalizeSystemDateTimeResponse)
}

// GetSystemUris fetches the log, support info and backup URIs
func (c *DeviceClient) GetSystemUris(ctx context.Context) (SystemUris, error) {
	return call(ctx, c.base(), "GetSystemUris", nil, normalizeSystemUris)
}

// GetHostname fetches the device hostname
func (c *DeviceClient) GetHostname(ctx context.Context) (Hostname, error) {
	return call(ctx, c.base(), "GetHostname", nil, normalizeHostnameResponse)
}

// GetUsers retrieves all users from the device
func (c *DeviceClient) GetUsers(ctx context.Context) (Users, error) {
	return call(ctx, c.base(), "GetUsers", nil, normalizeUsers)
}

func normalizeDeviceInformation(n node) (DeviceInformation, error) {
	var (
		info DeviceInformation
		err  error
	)
	if info.Manufacturer, err = n.str("Manufacturer"); err != nil {
		return info, err
	}
	if info.Model, err = n.str("Model"); err != nil {
		return info, err
	}
	if info.FirmwareVersion, err = n.str("FirmwareVersion"); err != nil {
		return info, err
	}
	if info.SerialNumber, err = n.str("SerialNumber"); err != nil {
		return info, err
	}
	if info.HardwareID, err = n.str("HardwareId"); err != nil {
		return info, err
	}
	return info, nil
}

func normalizeSystemDateTimeResponse(n node) (SystemDateTime, error) {
	return required(n, "SystemDateAndTime", normalizeSystemDateTime)
}

func normalizeSystemDateTime(n node) (SystemDateTime, error) {
	var (
		dt  SystemDateTime
		err error
	)
	if dt.DateTimeType, err = enum(n, "DateTimeType", DateTimeManual, DateTimeNTP); err != nil {
		return dt, err
	}
	if dt.DaylightSavings, err = n.bool("DaylightSavings"); err != nil {
		return dt, err
	}
	if tz, ok := n.child("TimeZone"); ok {
		name, err := tz.str("TZ")
		if err != nil {
			return dt, err
		}
		dt.TimeZone = &name
	}
	if dt.UTCDateTime, err = optional(n, "UTCDateTime", normalizeDateTime); err != nil {
		return dt, err
	}
	if dt.LocalDateTime, err = optional(n, "LocalDateTime", normalizeDateTime); err != nil {
		return dt, err
	}
	return dt, nil
}

func normalizeDateTime(n node) (DateTime, error) {
	var (
		dt  DateTime
		err error
	)
	date, err := n.must("Date")
	if err != nil {
		return dt, err
	}
	if dt.Date.Year, err = date.int("Year"); err != nil {
		return dt, err
	}
	if dt.Date.Month, err = date.int("Month"); err != nil {
		return dt, err
	}
	if dt.Date.Day, err = date.int("Day"); err != nil {
		return dt, err
	}

	t, err := n.must("Time")
	if err != nil {
		return dt, err
	}
	if dt.Time.Hour, err = t.int("Hour"); err != nil {
		return dt, err
	}
	if dt.Time.Minute, err = t.int("Minute"); err != nil {
		return dt, err
	}
	if dt.Time.Second, err = t.int("Second"); err != nil {
		return dt, err
	}
	return dt, nil
}

func normalizeSystemUris(n node) (SystemUris, error) {
	uris := SystemUris{
		SystemLogURIs:   []SystemLogURI{},
		SupportInfoURI:  n.optStr("SupportInfoUri"),
		SystemBackupURI: n.optStr("SystemBackupUri"),
	}

	if logs, ok := n.child("SystemLogUris"); ok {
		entries, err := mapAll(logs.children("SystemLog"), normalizeSystemLogURI)
		if err != nil {
			return uris, err
		}
		uris.SystemLogURIs = entries
	}
	return uris, nil
}

func normalizeSystemLogURI(n node) (SystemLogURI, error) {
	var (
		entry SystemLogURI
		err   error
	)
	if entry.Type, err = enum(n, "Type", SystemLogSystem, SystemLogAccess); err != nil {
		return entry, err
	}
	if entry.URI, err = n.str("Uri"); err != nil {
		return entry, err
	}
	return entry, nil
}

func normalizeHostnameResponse(n node) (Hostname, error) {
	return required(n, "HostnameInformation", func(h node) (Hostname, error) {
		fromDHCP, err := h.bool("FromDHCP")
		if err != nil {
			return Hostname{}, err
		}
		return Hostname{FromDHCP: fromDHCP, Name: h.optStr("Name")}, nil
	})
}

func normalizeUsers(n node) (Users, error) {
	users, err := mapAll(n.children("User"), func(u node) (User, error) {
		var (
			user User
			err  error
		)
		if user.Username, err = u.str("Username"); err != nil {
			return user, err
		}
		user.UserLevel, err = enum(u, "UserLevel",
			UserLevelAdministrator, UserLevelOperator, UserLevelUser, UserLevelAnonymous, UserLevelExtended)
		return user, err
	})
	if err != nil {
		return Users{}, err
	}
	return Users{Users: users}, nil
}
