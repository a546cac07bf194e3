// ABOUTME: Tests for version constants
// ABOUTME: Ensures build identity strings are defined and sane
package version

import (
	"strings"
	"testing"
)

func TestVersionDefined(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if !strings.ContainsAny(Version, "0123456789") && Version != "dev" {
		t.Errorf("Version %q looks malformed", Version)
	}
}

func TestIdentityDefined(t *testing.T) {
	if Product == "" {
		t.Error("Product should not be empty")
	}
	if Manufacturer == "" {
		t.Error("Manufacturer should not be empty")
	}
}
