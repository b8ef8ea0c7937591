package onvif

import (
	"fmt"
	"strings"
)

// AddressMode identifies how a ConnectionTarget is reached
type AddressMode int

const (
	// AddressDirect contacts the device at http://host:port
	AddressDirect AddressMode = iota
	// AddressTunnel uses the host string, which embeds a scheme, as the base URL
	AddressTunnel
	// AddressRedirect looks the device URL up through a security gateway
	AddressRedirect
)

func (m AddressMode) String() string {
	switch m {
	case AddressTunnel:
		return "tunnel"
	case AddressRedirect:
		return "redirect"
	default:
		return "direct"
	}
}

// ConnectionTarget describes one device to contact. It is built per request
// and never modified afterwards.
type ConnectionTarget struct {
	Host        string  `json:"host" binding:"required"`
	Port        *int    `json:"port"`
	User        *string `json:"user"`
	Password    *string `json:"password"`
	RedirectURL *string `json:"redirect_url"`
}

// NewTarget returns a direct-mode target for host:port
func NewTarget(host string, port int) ConnectionTarget {
	return ConnectionTarget{Host: host, Port: &port}
}

// WithCredentials returns a copy of the target carrying user and password
func (t ConnectionTarget) WithCredentials(user, password string) ConnectionTarget {
	t.User = &user
	t.Password = &password
	return t
}

// WithRedirect returns a copy of the target that resolves through a security gateway
func (t ConnectionTarget) WithRedirect(url string) ConnectionTarget {
	t.RedirectURL = &url
	return t
}

// Mode classifies the target. A scheme embedded in the host wins over a
// redirect URL, which wins over direct addressing.
func (t ConnectionTarget) Mode() AddressMode {
	if t.IsTunnel() {
		return AddressTunnel
	}
	if t.RedirectURL != nil && *t.RedirectURL != "" {
		return AddressRedirect
	}
	return AddressDirect
}

// IsTunnel reports whether the host carries an http:// or https:// prefix
func (t ConnectionTarget) IsTunnel() bool {
	for _, scheme := range []string{"http://", "https://"} {
		if strings.Contains(t.Host, scheme) {
			return true
		}
	}
	return false
}

// Credentials returns the user and password, empty when anonymous
func (t ConnectionTarget) Credentials() (string, string) {
	var user, password string
	if t.User != nil {
		user = *t.User
	}
	if t.Password != nil {
		password = *t.Password
	}
	return user, password
}

func (t ConnectionTarget) String() string {
	switch t.Mode() {
	case AddressTunnel:
		return t.Host
	case AddressRedirect:
		return fmt.Sprintf("%s via %s", t.Host, *t.RedirectURL)
	}
	if t.Port != nil {
		return fmt.Sprintf("%s:%d", t.Host, *t.Port)
	}
	return t.Host
}
