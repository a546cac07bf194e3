// ABOUTME: Example usage of the mpegfeed public API
// ABOUTME: Demonstrates decoder registration lookup
package mpegfeed_test

import (
	"fmt"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/mpegfeed"
)

func ExampleRegistry() {
	registry := mpegfeed.NewRegistry()
	mpegfeed.RegisterDecoders(registry)

	info, ok := registry.Lookup("mp3")
	fmt.Println(ok)
	fmt.Println(info.Name)
	fmt.Println(info.Description)
	// Output:
	// true
	// mpegfeed
	// Feed-based MPEG Layer I/II/III audio decoder
}
