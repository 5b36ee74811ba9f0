// Package catalog holds the WCAG cases shown by the demo.
//
// Each Case pairs an inaccessible HTML snippet with an accessible one and
// explains the difference. Cases are grouped by the four WCAG principles
// (Pillar), derived from the first component of the criterion number.
//
// The default catalog is embedded from cases.yaml. A custom file with the
// same layout can be loaded with LoadFile and watched for edits with
// Watch:
//
//	version: 1
//	cases:
//	  - id: wcag-1-1-1
//	    criterion: 1.1.1
//	    name: Non-text content
//	    inaccessible: <img src="logo.png">
//	    accessible: <img src="logo.png" alt="XYZ company logo">
//
// Registry maps "<id>/<variant>" template keys to renderers or interactive
// demos, and Toggles records which cases the user has expanded.
package catalog
