// Command cinevault-cli manages the catalog of the development bridge server:
// media files and their subtitle and audio tracks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/vrsandeep/cinevault-go/internal/assets"
	"github.com/vrsandeep/cinevault-go/internal/config"
	"github.com/vrsandeep/cinevault-go/internal/db"
	"github.com/vrsandeep/cinevault-go/internal/models"
	"github.com/vrsandeep/cinevault-go/internal/store"
	"github.com/vrsandeep/cinevault-go/internal/util"
)

const usage = `usage: cinevault-cli <command> [flags]

commands:
  add-media        register a media file
  add-subtitle     attach a subtitle track to a media file
  remove-subtitle  delete a subtitle track by id
  set-audio        replace the audio tracks of a media file
  list             list media files with their playback state
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	os.Exit(openAndRun(os.Args[1], os.Args[2:]))
}

// openAndRun opens the catalog database, runs one subcommand and returns
// the process exit code once the database is closed.
func openAndRun(cmd string, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		log.Printf("Failed to initialize database: %v", err)
		return 1
	}
	defer database.Close()

	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		log.Printf("Failed to run database migrations: %v", err)
		return 1
	}

	if err := run(store.New(database), cmd, args); err != nil {
		log.Printf("%s: %v", cmd, err)
		return 1
	}
	return 0
}

func run(st *store.Store, cmd string, args []string) error {
	switch cmd {
	case "add-media":
		return addMedia(st, args)
	case "add-subtitle":
		return addSubtitle(st, args)
	case "remove-subtitle":
		return removeSubtitle(st, args)
	case "set-audio":
		return setAudio(st, args)
	case "list":
		return list(st)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func addMedia(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-media", flag.ExitOnError)
	path := fs.String("path", "", "path of the media file")
	title := fs.String("title", "", "display title")
	year := fs.Int("year", 0, "release year")
	mediaType := fs.String("type", "movie", "movie, tv_episode, music, video or audio")
	duration := fs.Int64("duration", 0, "duration in seconds, 0 if unknown")
	fs.Parse(args)
	if err := util.ValidateMediaPath(*path); err != nil {
		return err
	}

	m := models.MediaFile{FilePath: *path, FileName: filepath.Base(*path), MediaType: *mediaType}
	if *title != "" {
		m.Title = title
	}
	if *year > 0 {
		m.Year = year
	}
	if *duration > 0 {
		m.Duration = duration
	}
	created, err := st.CreateMediaFile(m)
	if err != nil {
		return err
	}
	fmt.Printf("Added media %d: %s\n", created.ID, created.FilePath)
	return nil
}

func addSubtitle(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-subtitle", flag.ExitOnError)
	mediaID := fs.Int64("media", 0, "media file id")
	path := fs.String("path", "", "path of the subtitle file")
	label := fs.String("label", "", "track label")
	lang := fs.String("lang", "", "language code")
	embedded := fs.Bool("embedded", false, "track is embedded in the media file")
	index := fs.Int("index", -1, "stream index of an embedded track")
	fs.Parse(args)
	if *mediaID == 0 {
		return fmt.Errorf("-media is required")
	}
	locator, err := util.FileLocator(*path)
	if err != nil {
		return err
	}

	t := models.SubtitleTrack{MediaID: *mediaID, FilePath: *path, IsEmbedded: *embedded}
	if *label != "" {
		t.Label = label
	}
	if *lang != "" {
		t.Language = lang
	}
	if *index >= 0 {
		t.TrackIndex = index
	}
	id, err := st.AddSubtitleTrack(t)
	if err != nil {
		return err
	}
	fmt.Printf("Added subtitle track %d to media %d (%s)\n", id, *mediaID, locator)
	return nil
}

func removeSubtitle(st *store.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a single track id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid track id %q", args[0])
	}
	return st.RemoveSubtitleTrack(id)
}

// setAudio takes one "lang:codec:channels" spec per remaining argument.
// The first track becomes the default.
func setAudio(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("set-audio", flag.ExitOnError)
	mediaID := fs.Int64("media", 0, "media file id")
	fs.Parse(args)
	if *mediaID == 0 {
		return fmt.Errorf("-media is required")
	}
	m, err := st.GetMediaFile(*mediaID)
	if err != nil {
		return err
	}

	var tracks []models.AudioTrack
	for i, spec := range fs.Args() {
		track, err := parseAudioSpec(spec)
		if err != nil {
			return err
		}
		track.IsDefault = i == 0
		tracks = append(tracks, track)
	}
	if err := st.SaveAudioTracks(m.ID, m.FilePath, tracks); err != nil {
		return err
	}
	fmt.Printf("Saved %d audio track(s) for media %d\n", len(tracks), m.ID)
	return nil
}

func list(st *store.Store) error {
	files, err := st.ListMediaFiles()
	if err != nil {
		return err
	}
	util.SortMediaFiles(files)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPOSITION\tCOMPLETED")
	for _, m := range files {
		state, err := st.GetPlaybackState(m.ID)
		if err != nil {
			return err
		}
		title := m.FileName
		if m.Title != nil {
			title = *m.Title
		}
		position, completed := "-", false
		if state != nil {
			position = strconv.FormatInt(state.LastPosition, 10) + "s"
			completed = state.Completed
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", m.ID, title, position, completed)
	}
	return w.Flush()
}
