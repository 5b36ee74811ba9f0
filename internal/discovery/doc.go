// Package discovery advertises and finds wcagdemo servers on the local
// network over multicast DNS.
//
// A server started with `wcagdemo serve --advertise` registers itself as a
// "_wcagdemo._tcp" service. Its TXT record carries the build version and
// the number of cases in its catalog:
//
//	version=v0.3.0
//	cases=12
//
// # Usage Example
//
//	// Advertise until ctx is cancelled
//	go discovery.Advertise(ctx, discovery.Instance{
//	    Name:    "wcagdemo",
//	    Port:    8470,
//	    Version: version.Version,
//	    Cases:   cat.Len(),
//	}, logger)
//
//	// Find servers with a 3-second browse
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//	servers, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, s := range servers {
//	    fmt.Println(s, s.BaseURL())
//	}
//
// Scan returns one entry per instance name. Entries without an address are
// dropped, and a missing or malformed cases value is reported as -1.
package discovery
