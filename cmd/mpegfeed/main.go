// ABOUTME: Entry point for the mpegfeed decoder CLI
// ABOUTME: Feeds a file or websocket stream through a decode session
package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Resonate-Protocol/mpegfeed-go/internal/playback"
	"github.com/Resonate-Protocol/mpegfeed-go/internal/stream"
	"github.com/Resonate-Protocol/mpegfeed-go/internal/ui"
	"github.com/Resonate-Protocol/mpegfeed-go/internal/version"
	"github.com/Resonate-Protocol/mpegfeed-go/internal/wavout"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/audio"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/engine"
	"github.com/Resonate-Protocol/mpegfeed-go/pkg/mpegfeed"
)

var (
	inPath     = flag.String("in", "", "Input file (.mp1/.mp2/.mp3)")
	wsURL      = flag.String("url", "", "Websocket stream URL (ws://host/stream)")
	outPath    = flag.String("out", "", "Write decoded PCM to a WAV file")
	play       = flag.Bool("play", false, "Play decoded audio on the default output device")
	engineName = flag.String("engine", "auto", "Decode engine: auto, mp2 or mp3")
	chunkSize  = flag.Int("chunk", stream.DefaultChunkSize, "File read chunk size in bytes")
	logFile    = flag.String("log-file", "mpegfeed.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("%s %s (%s)", version.Product, version.Version, version.Manufacturer)

	if *inPath == "" && *wsURL == "" {
		flag.Usage()
		log.Fatalf("need either -in or -url")
	}
	if *inPath != "" && *wsURL != "" {
		log.Fatalf("-in and -url are mutually exclusive")
	}

	eng, src, sourceName, err := buildPipeline()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// A live stream source survives server restarts: redial, reset the
	// session, keep decoding.
	var reconnect func() error
	if ws, ok := src.(*stream.WSSource); ok {
		reconnect = ws.Redial
	}

	reg := mpegfeed.NewRegistry()
	mpegfeed.RegisterDecoders(reg)
	if info, ok := reg.Lookup("mp3"); ok {
		log.Printf("Registered decoder: %s (%s)", info.Name, info.Description)
	}

	sess, err := mpegfeed.NewSession(eng, src)
	if err != nil {
		log.Fatalf("failed to open decode session: %v", err)
	}
	defer func() { _ = sess.Close() }()

	if !useTUI {
		log.Printf("Decode session %s reading from %s", sess.ID(), sourceName)
	}

	// TUI setup
	var tuiProg *tea.Program
	if useTUI {
		tuiProg = ui.Run()
	}
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	// Handle shutdown
	stop := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutdown signal received")
		close(stop)
	}()
	if tuiProg != nil {
		go func() {
			_, _ = tuiProg.Run()
			close(stop)
		}()
	}

	if err := decodeLoop(sess, sourceName, stop, reconnect, updateTUI); err != nil {
		log.Printf("Decode failed: %v", err)
	}

	if tuiProg != nil {
		tuiProg.Quit()
	}
	log.Printf("Decoder stopped")
}

// buildPipeline selects the engine and packet source from the flags.
func buildPipeline() (engine.Engine, mpegfeed.PacketSource, string, error) {
	name := *engineName
	if name == "auto" {
		name = pickEngine(*inPath, *wsURL)
	}

	if *wsURL != "" {
		if name == "mp3" {
			return nil, nil, "", errors.New("the mp3 engine buffers its whole feed and cannot follow a live stream, use -engine mp2")
		}
		if name != "mp2" {
			return nil, nil, "", errors.New("unknown engine " + name + ", want mp2 or mp3")
		}
		src, err := stream.DialWS(*wsURL)
		if err != nil {
			return nil, nil, "", err
		}
		return engine.NewMP2(), src, *wsURL, nil
	}

	switch name {
	case "mp2":
		fh, err := os.Open(*inPath)
		if err != nil {
			return nil, nil, "", err
		}
		return engine.NewMP2(), stream.NewChunkSource(fh, *chunkSize), *inPath, nil
	case "mp3":
		// The mp3 engine needs its whole feed before the first decode,
		// so serve the file as a single packet.
		data, err := os.ReadFile(*inPath)
		if err != nil {
			return nil, nil, "", err
		}
		return engine.NewMP3(), stream.NewChunkSource(bytes.NewReader(data), len(data)), *inPath, nil
	default:
		return nil, nil, "", errors.New("unknown engine " + name + ", want mp2 or mp3")
	}
}

// pickEngine guesses the engine from the input name. Layer III files go
// through the mp3 engine, everything else through the incremental mp2 one.
func pickEngine(inPath, wsURL string) string {
	if wsURL != "" {
		return "mp2"
	}
	if strings.EqualFold(filepath.Ext(inPath), ".mp3") {
		return "mp3"
	}
	return "mp2"
}

// maxReconnects bounds consecutive reconnect attempts without a decoded
// block in between.
const maxReconnects = 3

// decodeLoop pulls blocks from the session until the source is exhausted,
// wiring each block into the configured sinks. When reconnect is non-nil the
// loop treats end of stream as a dropped connection and tries to resume.
func decodeLoop(sess *mpegfeed.Session, sourceName string, stop <-chan struct{}, reconnect func() error, updateTUI func(ui.StatusMsg)) error {
	var wav *wavout.Writer
	var out *playback.Output
	defer func() {
		if wav != nil {
			if err := wav.Close(); err != nil {
				log.Printf("Error closing WAV output: %v", err)
			}
		}
		if out != nil {
			_ = out.Close()
		}
	}()

	var blocks, samples, decodeErrors int64
	reconnects := 0
	sinkFormat := audio.Format{}
	lastStatus := time.Now()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		block, err := sess.DecodePacket()
		if err == io.EOF && reconnect != nil && reconnects < maxReconnects {
			reconnects++
			if rerr := reconnect(); rerr != nil {
				log.Printf("Reconnect failed: %v", rerr)
				return nil
			}
			if rerr := sess.Reset(); rerr != nil {
				return rerr
			}
			continue
		}
		if err == io.EOF {
			updateTUI(ui.StatusMsg{
				Source:  sourceName,
				Format:  sinkFormat,
				VBR:     sess.VBR(),
				Bitrate: sess.Bitrate(),
				Blocks:  blocks,
				Samples: samples,
				Errors:  decodeErrors,
				Done:    true,
			})
			log.Printf("End of stream: %d blocks, %d samples", blocks, samples)
			return nil
		}
		if err != nil {
			// Decode errors are scoped to one packet; the session stays
			// usable, so keep going the way a player host would.
			if errors.Is(err, mpegfeed.ErrDecode) {
				decodeErrors++
				log.Printf("Decode error: %v", err)
				continue
			}
			return err
		}
		if block.Empty() {
			continue
		}

		blocks++
		samples += int64(block.Samples)
		reconnects = 0

		if sinkFormat == (audio.Format{}) {
			sinkFormat = block.Format
			log.Printf("Stream format: %d Hz, %d ch, %s", sinkFormat.SampleRate, sinkFormat.Channels, sinkFormat.Sample)
		} else if block.Format != sinkFormat {
			log.Printf("Format changed mid-stream to %d Hz, %d ch", block.Format.SampleRate, block.Format.Channels)
			sinkFormat = block.Format
		}

		if *outPath != "" && wav == nil {
			wav, err = wavout.Create(*outPath, block.Format)
			if err != nil {
				return err
			}
		}
		if *play && out == nil {
			out = playback.NewOutput()
			if err := out.Open(block.Format); err != nil {
				return err
			}
		}

		if wav != nil {
			if err := wav.WriteBlock(block); err != nil {
				return err
			}
		}
		if out != nil {
			if err := out.WriteBlock(block); err != nil {
				return err
			}
		}

		if time.Since(lastStatus) >= 200*time.Millisecond {
			lastStatus = time.Now()
			updateTUI(ui.StatusMsg{
				Source:  sourceName,
				Format:  sinkFormat,
				VBR:     sess.VBR(),
				Bitrate: sess.Bitrate(),
				Blocks:  blocks,
				Samples: samples,
				Errors:  decodeErrors,
			})
		}
	}
}
