// Command cinevault-player runs a headless player session against a bridge
// server. It plays a simulated source and reads keyboard shortcuts, one per
// line, from stdin.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vrsandeep/cinevault-go/internal/backend"
	"github.com/vrsandeep/cinevault-go/internal/bridge"
	"github.com/vrsandeep/cinevault-go/internal/config"
	"github.com/vrsandeep/cinevault-go/internal/logging"
	"github.com/vrsandeep/cinevault-go/internal/mediasource"
	"github.com/vrsandeep/cinevault-go/internal/models"
	"github.com/vrsandeep/cinevault-go/internal/notify"
	"github.com/vrsandeep/cinevault-go/internal/player"
	"github.com/vrsandeep/cinevault-go/internal/util"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup, so it reports failures through its exit
// code instead of exiting itself.
func run() int {
	mediaID := flag.Int64("media", 0, "media file id to play")
	title := flag.String("title", "", "title shown while playing")
	locator := flag.String("locator", "", "media locator, defaults to asset://localhost/<id>")
	duration := flag.Float64("duration", 0, "simulated duration in seconds, 0 for a live stream")
	speed := flag.Float64("speed", 1, "simulated media seconds per wall second")
	flag.Parse()
	if *mediaID == 0 {
		fmt.Fprintln(os.Stderr, "usage: cinevault-player -media <id> [-title t] [-duration s]")
		return 2
	}
	if *locator == "" {
		*locator = util.MediaLocator(*mediaID)
	}
	if *title == "" {
		*title = fmt.Sprintf("Media %d", *mediaID)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	logCloser := logging.Setup(cfg)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := notify.New(0)
	notes, unsubscribe := notifier.Subscribe()
	defer unsubscribe()
	go printNotifications(notes)

	conn, err := bridge.Dial(ctx, cfg.Bridge.URL, bridge.Options{
		DialAttempts:      cfg.Bridge.DialAttempts,
		VersionConstraint: cfg.Bridge.VersionConstraint,
	})
	if err != nil {
		log.Printf("Could not reach the backend: %v", err)
		return 1
	}
	defer conn.Close()
	listenForEvents(conn)

	client := backend.NewClient(conn)
	opts, err := playerOptions(cfg.Player, notifier)
	if err != nil {
		log.Printf("Invalid player configuration: %v", err)
		return 1
	}

	// Native text tracks must exist before the source is opened.
	subs, err := client.GetSubtitleTracks(ctx, *mediaID)
	if err != nil {
		log.Printf("Failed to prefetch subtitle tracks: %v", err)
	}
	src := mediasource.NewSimulated(*locator, mediasource.Options{
		Duration:   *duration,
		Speed:      *speed,
		TextTracks: mediasource.TextTracksFrom(subs),
		Fullscreen: true,
	})

	done := make(chan struct{})
	opts.OnClose = func() { close(done) }
	launcher := player.NewLauncher(client, opts)
	shell, err := launcher.Open(ctx, player.Item{MediaID: *mediaID, Title: *title, Locator: *locator}, src)
	if err != nil {
		log.Printf("Could not start playback: %v", err)
		return 1
	}

	config.Watch(func(c *config.Config) {
		set := playerSettings(c.Player)
		launcher.UpdateSettings(set)
		shell.ApplySettings(set)
		log.Printf("Player settings applied: seek step %.0fs, volume step %.2f", c.Player.SeekStep, c.Player.VolumeStep)
	})

	go src.Run(ctx)
	go readCommands(shell, os.Stdin, os.Stdout)

	select {
	case <-done:
	case <-ctx.Done():
		shell.Close()
	case <-conn.Done():
		log.Printf("Bridge connection lost: %v", conn.Err())
		shell.Close()
	}
	shell.Wait()

	st := shell.State()
	log.Printf("Stopped at %.0fs of %.0fs (completed: %t)", st.CurrentTime, st.Duration, shell.Completed())
	return 0
}

func playerOptions(pc config.PlayerConfig, n player.Notifier) (player.Options, error) {
	policy, err := player.NewCheckpointPolicy(pc.CheckpointMode, pc.CheckpointInterval)
	if err != nil {
		return player.Options{}, err
	}
	return player.Options{
		AutoPlay:            pc.AutoPlay,
		SeekStep:            pc.SeekStep,
		VolumeStep:          pc.VolumeStep,
		IdleTimeout:         pc.IdleTimeout(),
		CheckpointPolicy:    policy,
		CompletionThreshold: pc.CompletionThreshold,
		Notifier:            n,
	}, nil
}

// playerSettings picks the options a running session can take over.
func playerSettings(pc config.PlayerConfig) player.Settings {
	return player.Settings{
		SeekStep:    pc.SeekStep,
		VolumeStep:  pc.VolumeStep,
		IdleTimeout: pc.IdleTimeout(),
	}
}

// readCommands maps input lines to shell actions. Besides key names it
// accepts "subs", "pointer", "state" and "seek <seconds>".
func readCommands(shell *player.Shell, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if shell.Closed() {
			return
		}
		line := scanner.Text()
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			shell.HandleKey(player.KeySpace)
		case fields[0] == "subs":
			fmt.Fprintf(out, "Subtitles on: %t\n", shell.ToggleSubtitles())
		case fields[0] == "pointer":
			shell.PointerMoved()
		case fields[0] == "state":
			raw, err := json.Marshal(shell.State())
			if err != nil {
				fmt.Fprintf(out, "Could not encode state: %v\n", err)
				continue
			}
			fmt.Fprintln(out, string(raw))
		case fields[0] == "seek" && len(fields) == 2:
			var seconds float64
			if _, err := fmt.Sscanf(fields[1], "%g", &seconds); err != nil {
				fmt.Fprintf(out, "Invalid seek target %q\n", fields[1])
				continue
			}
			shell.Seek(seconds)
		default:
			key := player.ParseKey(line)
			if key == player.KeyUnknown {
				fmt.Fprintf(out, "Unknown command %q\n", line)
				continue
			}
			shell.HandleKey(key)
		}
	}
}

func printNotifications(notes <-chan notify.Notification) {
	for n := range notes {
		fmt.Printf("[%s] %s\n", n.Kind, n.Message)
	}
}

func listenForEvents(conn *bridge.Client) {
	conn.Listen(backend.EventScanProgress, func(payload json.RawMessage) {
		var p models.ScanProgress
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Printf("Malformed %s event: %v", backend.EventScanProgress, err)
			return
		}
		log.Printf("Library scan %s: %d/%d %s", p.Status, p.Processed, p.Total, p.CurrentFile)
	})
	conn.Listen(backend.EventWatchStats, func(payload json.RawMessage) {
		var s models.WatchStats
		if err := json.Unmarshal(payload, &s); err != nil {
			log.Printf("Malformed %s event: %v", backend.EventWatchStats, err)
			return
		}
		log.Printf("Watch stats: %d watched, %d in progress, %d sessions", s.TotalWatched, s.TotalInProgress, s.TotalSessions)
	})
}
