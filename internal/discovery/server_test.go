package discovery

import (
	"strings"
	"testing"
)

func TestInstanceTXT(t *testing.T) {
	got := Instance{Name: "wcagdemo", Port: 8470, Version: "v0.3.0", Cases: 12}.TXT()
	want := "version=v0.3.0,cases=12"
	if strings.Join(got, ",") != want {
		t.Errorf("TXT() = %v, want %s", got, want)
	}

	got = Instance{Name: "wcagdemo", Port: 8470}.TXT()
	if strings.Join(got, ",") != "cases=0" {
		t.Errorf("TXT() without version = %v", got)
	}
}

func TestServerString(t *testing.T) {
	srv := &Server{Instance: "lab", IP: "192.168.1.20", Port: 8470, Version: "v0.3.0"}
	if got, want := srv.String(), "lab at 192.168.1.20:8470 (v0.3.0)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestServerBaseURL(t *testing.T) {
	tests := []struct {
		name   string
		server *Server
		want   string
	}{
		{"ipv4", &Server{IP: "10.0.0.5", Port: 8470}, "http://10.0.0.5:8470"},
		{"ipv6", &Server{IP: "fe80::1", Port: 80}, "http://[fe80::1]:80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.server.BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
