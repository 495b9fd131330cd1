package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/paroles-live/paroles/internal/application/config"
	"github.com/paroles-live/paroles/internal/application/constant"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/usecase"
)

// songsCmd scans the configured backend once and prints the catalog,
// for checking a library without starting the server.
var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Scan the song library and print the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		runSongs()
	},
}

func runSongs() {
	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stderr,
				&slog.HandlerOptions{Level: slog.LevelWarn},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse config:", err)
		os.Exit(1)
	}

	backend, _, err := buildBackend(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init storage backend:", err)
		os.Exit(1)
	}

	songRepo := memory.NewSongRepository()
	library := usecase.NewLibraryUsecase(backend, songRepo)

	if _, _, err := library.Refresh(context.Background()); err != nil {
		slog.Error("scan library", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Title", "Artist", "Difficulty", "Duration", "Cues", "Video"})

	for _, song := range songRepo.All() {
		video := ""
		if song.HasVideo {
			video = "yes"
		}
		tw.AppendRow(table.Row{
			song.ID,
			song.Title,
			song.Artist,
			song.Difficulty,
			fmt.Sprintf("%.0fs", song.Duration),
			len(song.Lyrics),
			video,
		})
	}

	tw.Render()
}
