// Package urls collects the reference links printed by the CLI and shown
// in the demo, so they can be updated in one place.
//
// Usage:
//
//	import "github.com/muurk/wcagdemo/internal/urls"
//
//	fmt.Printf("Reference: %s\n", urls.Criterion(c.Criterion))
package urls
