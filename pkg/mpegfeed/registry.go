// ABOUTME: Decoder registration metadata
// ABOUTME: Identity of this adapter plus a registry hosts can enumerate
package mpegfeed

import "sync"

// Info describes a decoder adapter to the host pipeline. Pure data.
type Info struct {
	Name        string // decoder identity
	Container   string // supported container tag
	Codec       string // supported codec tag
	Description string // human-readable description
}

// Describe returns this adapter's registration metadata.
func Describe() Info {
	return Info{
		Name:        "mpegfeed",
		Container:   "mp3",
		Codec:       "mp3",
		Description: "Feed-based MPEG Layer I/II/III audio decoder",
	}
}

// Registry holds decoder registrations keyed by codec tag.
type Registry struct {
	mu       sync.Mutex
	decoders map[string]Info
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Info)}
}

func (r *Registry) Register(info Info) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[info.Codec] = info
}

func (r *Registry) Lookup(codec string) (Info, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.decoders[codec]
	return info, ok
}

// RegisterDecoders adds this package's adapters to a host registry.
func RegisterDecoders(r *Registry) {
	r.Register(Describe())
}
