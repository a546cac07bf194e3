// ABOUTME: Version constants for the mpegfeed decoder
// ABOUTME: Identifies the build in logs and host registrations
package version

const (
	// Version is the semantic version of this build.
	Version = "0.1.0"

	// Product is the product name reported to hosts.
	Product = "mpegfeed"

	// Manufacturer identifies who ships this decoder.
	Manufacturer = "Resonate"
)
