package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance describes a wcagdemo server to advertise.
type Instance struct {
	// Name is the mDNS instance name (e.g., "wcagdemo")
	Name string

	// Port is the HTTP port the server listens on
	Port int

	// Version is the build version published in the TXT record
	Version string

	// Cases is the number of cases the server's catalog holds
	Cases int
}

// TXT returns the TXT record entries for the instance.
func (i Instance) TXT() []string {
	txt := []string{"cases=" + strconv.Itoa(i.Cases)}
	if i.Version != "" {
		txt = append([]string{"version=" + i.Version}, txt...)
	}
	return txt
}

func (i Instance) validate() error {
	if i.Name == "" {
		return fmt.Errorf("instance name is required")
	}
	if i.Port <= 0 || i.Port > 65535 {
		return fmt.Errorf("invalid port %d", i.Port)
	}
	return nil
}

// Server is a wcagdemo server found on the network.
type Server struct {
	// Instance is the advertised instance name
	Instance string

	// Host is the mDNS hostname (e.g., "laptop.local.")
	Host string

	// IP is the first IPv4 address, or an IPv6 address when none is published
	IP string

	Port    int
	Version string

	// Cases is the catalog size from the TXT record, or -1 when absent
	Cases int

	DiscoveredAt time.Time
}

// String returns a human-readable description of the server.
func (s *Server) String() string {
	desc := fmt.Sprintf("%s at %s", s.Instance, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
	if s.Version != "" {
		desc += " (" + s.Version + ")"
	}
	return desc
}

// BaseURL returns the HTTP base URL of the server.
func (s *Server) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}
