package discovery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type wcagdemo servers register
	ServiceType = "_wcagdemo._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout is how long Scan browses by default
	DefaultScanTimeout = 5 * time.Second
)

// Advertise registers inst over mDNS and keeps the registration until ctx
// is done.
func Advertise(ctx context.Context, inst Instance, logger *zap.Logger) error {
	if err := inst.validate(); err != nil {
		return err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	srv, err := zeroconf.Register(inst.Name, ServiceType, ServiceDomain, inst.Port, inst.TXT(), nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logger.Info("advertising over mDNS",
		zap.String("instance", inst.Name),
		zap.String("service", ServiceType),
		zap.Int("port", inst.Port),
	)

	<-ctx.Done()
	srv.Shutdown()
	logger.Debug("mDNS registration withdrawn", zap.String("instance", inst.Name))
	return nil
}

// Scanner browses for wcagdemo servers.
type Scanner struct {
	// Timeout is the maximum time Scan browses for
	Timeout time.Duration
}

// NewScanner creates a scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan browses until the timeout or ctx ends and returns the servers found,
// one per instance name.
func (s *Scanner) Scan(ctx context.Context) ([]*Server, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu      sync.Mutex
		servers []*Server
		seen    = make(map[string]bool)
		done    = make(chan struct{})
	)
	go func() {
		defer close(done)
		for entry := range entries {
			srv := parseServiceEntry(entry)
			if srv == nil {
				continue
			}
			mu.Lock()
			if !seen[srv.Instance] {
				seen[srv.Instance] = true
				servers = append(servers, srv)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// The resolver closes entries once browsing stops.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]*Server, len(servers))
	copy(out, servers)
	return out, nil
}

// parseServiceEntry converts a zeroconf entry to a Server. It returns nil
// when the entry has no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	txt := parseTXT(entry.Text)
	cases := -1
	if v, ok := txt["cases"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cases = n
		}
	}

	return &Server{
		Instance:     entry.Instance,
		Host:         entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Version:      txt["version"],
		Cases:        cases,
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits key=value TXT entries. A key without "=" maps to "".
func parseTXT(records []string) map[string]string {
	out := make(map[string]string, len(records))
	for _, rec := range records {
		if rec == "" {
			continue
		}
		key, value, _ := strings.Cut(rec, "=")
		out[key] = value
	}
	return out
}
