// ABOUTME: WebSocket packet source
// ABOUTME: Pulls timestamped compressed packets from a WebSocket stream feed
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/mpegfeed"
	"github.com/gorilla/websocket"
)

// Binary message framing: 1 type byte, then payload. Timestamped packets
// carry an 8-byte big-endian microsecond timestamp between the two.
const (
	msgTimestampedPacket = 0
	msgPacket            = 1
)

// WSSource pulls compressed packets from a WebSocket stream server. Each
// binary message is one packet; text messages are ignored.
type WSSource struct {
	url  string
	conn *websocket.Conn
}

// DialWS connects to a WebSocket packet feed, e.g. "ws://host:port/stream".
func DialWS(url string) (*WSSource, error) {
	log.Printf("Connecting to %s", url)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	return &WSSource{url: url, conn: conn}, nil
}

// Redial drops the current connection and dials the same URL again. The
// source keeps its identity, so a decode session built over it survives a
// server restart: redial, reset the session, keep reading.
func (s *WSSource) Redial() error {
	_ = s.conn.Close()

	log.Printf("Reconnecting to %s", s.url)
	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		return fmt.Errorf("redial failed: %w", err)
	}
	s.conn = conn
	return nil
}

func (s *WSSource) ReadPacket() (*mpegfeed.Packet, error) {
	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read message: %w", err)
		}

		if messageType != websocket.BinaryMessage {
			continue
		}

		pkt, err := parseBinaryPacket(data)
		if err != nil {
			log.Printf("Skipping invalid packet: %v", err)
			continue
		}
		return pkt, nil
	}
}

func (s *WSSource) Close() error {
	return s.conn.Close()
}

func parseBinaryPacket(data []byte) (*mpegfeed.Packet, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("empty binary message")
	}

	switch data[0] {
	case msgTimestampedPacket:
		if len(data) < 9 {
			return nil, fmt.Errorf("timestamped packet too short: %d bytes", len(data))
		}
		return &mpegfeed.Packet{
			PTS:  int64(binary.BigEndian.Uint64(data[1:9])),
			Data: data[9:],
		}, nil
	case msgPacket:
		return &mpegfeed.Packet{PTS: audio.NoPTS, Data: data[1:]}, nil
	default:
		return nil, fmt.Errorf("unknown binary message type: %d", data[0])
	}
}
