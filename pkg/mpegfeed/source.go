// ABOUTME: Packet source abstraction
// ABOUTME: Defines the compressed-packet pull interface consumed by Session
package mpegfeed

// Packet is one compressed input chunk pulled from the host's demuxer or
// transport. Packets need not align with MPEG frame boundaries.
type Packet struct {
	Data []byte
	// PTS is the presentation timestamp of the packet's first sample in
	// microseconds, or audio.NoPTS when the packet carries no timestamp.
	PTS int64
}

// PacketSource supplies compressed packets to a Session.
type PacketSource interface {
	// ReadPacket returns the next packet. Ownership of the packet transfers
	// to the caller. Returns io.EOF when the source is exhausted.
	ReadPacket() (*Packet, error)
}
