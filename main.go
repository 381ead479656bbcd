package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jensmcatanho/hermes/internal/bencode"
	"github.com/jensmcatanho/hermes/internal/client"
	"github.com/jensmcatanho/hermes/internal/torrent"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitUnreadable
	exitDecode
	exitMissingField
	exitInvalidField
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("hermes", flag.ContinueOnError)
	flags.SetOutput(stderr)

	level := slog.LevelWarn
	flags.TextVar(&level, "log-level", slog.LevelWarn, "log level (debug, info, warn, error)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "hermes - BitTorrent client\nUsage:\n\thermes [flags] add <FILE>\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return exitUsage
	}

	switch rest[0] {
	case "add":
		return addCommand(rest[1:], logger, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", rest[0])
		flags.Usage()
		return exitUsage
	}
}

func addCommand(args []string, logger *slog.Logger, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: hermes add <FILE>")
		return exitUsage
	}

	c := client.New(logger)
	t, err := c.Add(args[0])
	if err != nil {
		fmt.Fprintln(stderr, err)
		logger.Debug("add failed", "path", args[0], "error", err)
		return exitCode(err)
	}

	fmt.Fprintln(stdout, "Torrent added!")
	printSummary(stdout, t)
	return exitOK
}

func exitCode(err error) int {
	var (
		pathErr    *fs.PathError
		decodeErr  *bencode.DecodeError
		missingErr *torrent.MissingRequiredFieldError
		invalidErr *torrent.InvalidFieldError
	)

	switch {
	case errors.As(err, &pathErr):
		return exitUnreadable
	case errors.As(err, &decodeErr):
		return exitDecode
	case errors.As(err, &missingErr):
		return exitMissingField
	case errors.As(err, &invalidErr):
		return exitInvalidField
	default:
		return exitFailure
	}
}

func printSummary(w io.Writer, t *torrent.Torrent) {
	fmt.Fprintf(w, "   Name: %s\n", t.Name)
	fmt.Fprintf(w, "   Size: %s\n", formatBytes(t.TotalSize()))
	fmt.Fprintf(w, "   Files: %d\n", len(t.Files))
	for _, f := range t.Files {
		fmt.Fprintf(w, "      %s (%s)\n", f.Path, formatBytes(f.Size))
	}
	fmt.Fprintf(w, "   Pieces: %d x %s\n", t.PieceCount(), formatBytes(t.PieceLength))
	fmt.Fprintf(w, "   Private: %v\n", t.IsPrivate)
	for _, tracker := range t.Trackers {
		fmt.Fprintf(w, "   Tracker: %s\n", tracker)
	}
	if t.Comment != "" {
		fmt.Fprintf(w, "   Comment: %s\n", t.Comment)
	}
	fmt.Fprintf(w, "   Info Hash: %s\n", t.InfoHash)
	fmt.Fprintf(w, "   Magnet: %s\n", t.Magnet())
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
