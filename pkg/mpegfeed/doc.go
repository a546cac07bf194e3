// ABOUTME: Feed-based MPEG audio decoding adapter
// ABOUTME: Session lifecycle, packet decode loop, bitrate estimation, registry
// Package mpegfeed adapts a feed-based MPEG audio decoding engine to a
// packet-driven host pipeline.
//
// A Session pulls compressed packets from a PacketSource, feeds them to an
// engine.Engine in arbitrary-sized, arbitrarily aligned chunks, and emits
// decoded PCM blocks with presentation-timestamp bookkeeping. It reacts to
// in-stream format changes, guards against emitting before the stream format
// is established, and maintains a smoothed bitrate estimate for VBR streams.
//
//	eng := engine.NewMP2()
//	sess, err := mpegfeed.NewSession(eng, source)
//	if err != nil {
//	    // engine could not be opened for feeding
//	}
//	defer sess.Close()
//
//	for {
//	    block, err := sess.DecodePacket()
//	    if err == io.EOF {
//	        break // packet source exhausted
//	    }
//	    if err != nil {
//	        // decode error; state from this call is discarded, the host
//	        // may continue with the next packet
//	    }
//	    if !block.Empty() {
//	        // consume block.PCM
//	    }
//	}
//
// A Session is single-threaded and non-reentrant: it is driven by exactly
// one decode loop, and Reset is only valid between DecodePacket calls.
package mpegfeed
