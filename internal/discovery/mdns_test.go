package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("NewScanner() timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"version=v1.2.0", "cases=12", "flag", "", "note=a=b"})

	want := map[string]string{
		"version": "v1.2.0",
		"cases":   "12",
		"flag":    "",
		"note":    "a=b",
	}
	if len(got) != len(want) {
		t.Errorf("parseTXT() has %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("parseTXT()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func entry(instance string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = "laptop.local."
	e.Port = 8470
	return e
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(e *zeroconf.ServiceEntry)
		wantNil   bool
		wantIP    string
		wantCases int
		wantVer   string
	}{
		{
			name: "ipv4 with TXT",
			setup: func(e *zeroconf.ServiceEntry) {
				e.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.20")}
				e.Text = []string{"version=v0.3.0", "cases=12"}
			},
			wantIP:    "192.168.1.20",
			wantCases: 12,
			wantVer:   "v0.3.0",
		},
		{
			name: "prefers ipv4",
			setup: func(e *zeroconf.ServiceEntry) {
				e.AddrIPv4 = []net.IP{net.ParseIP("10.0.0.5")}
				e.AddrIPv6 = []net.IP{net.ParseIP("fe80::1")}
			},
			wantIP:    "10.0.0.5",
			wantCases: -1,
		},
		{
			name: "ipv6 only",
			setup: func(e *zeroconf.ServiceEntry) {
				e.AddrIPv6 = []net.IP{net.ParseIP("fe80::1")}
			},
			wantIP:    "fe80::1",
			wantCases: -1,
		},
		{
			name: "malformed cases",
			setup: func(e *zeroconf.ServiceEntry) {
				e.AddrIPv4 = []net.IP{net.ParseIP("10.0.0.5")}
				e.Text = []string{"cases=many"}
			},
			wantIP:    "10.0.0.5",
			wantCases: -1,
		},
		{
			name:    "no address",
			setup:   func(e *zeroconf.ServiceEntry) {},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry("lab")
			tt.setup(e)
			srv := parseServiceEntry(e)

			if tt.wantNil {
				if srv != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", srv)
				}
				return
			}
			if srv == nil {
				t.Fatal("parseServiceEntry() = nil, want a server")
			}
			if srv.Instance != "lab" {
				t.Errorf("Instance = %q, want lab", srv.Instance)
			}
			if srv.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", srv.IP, tt.wantIP)
			}
			if srv.Port != 8470 {
				t.Errorf("Port = %d, want 8470", srv.Port)
			}
			if srv.Cases != tt.wantCases {
				t.Errorf("Cases = %d, want %d", srv.Cases, tt.wantCases)
			}
			if srv.Version != tt.wantVer {
				t.Errorf("Version = %q, want %q", srv.Version, tt.wantVer)
			}
			if time.Since(srv.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", srv.DiscoveredAt)
			}
		})
	}

	if parseServiceEntry(nil) != nil {
		t.Error("parseServiceEntry(nil) should be nil")
	}
}

func TestAdvertiseValidates(t *testing.T) {
	tests := []struct {
		name string
		inst Instance
	}{
		{"missing name", Instance{Port: 8470}},
		{"zero port", Instance{Name: "wcagdemo"}},
		{"port out of range", Instance{Name: "wcagdemo", Port: 70000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := Advertise(ctx, tt.inst, nil); err == nil {
				t.Error("Advertise() error = nil, want a validation error")
			}
		})
	}
}
