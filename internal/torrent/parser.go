package torrent

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jensmcatanho/hermes/internal/bencode"
	"github.com/jensmcatanho/hermes/internal/file"
	piece "github.com/jensmcatanho/hermes/internal/pieces"
)

// Open reads a .torrent file and builds a Torrent from it. Every failure is
// returned as a *NewTorrentFromFileError wrapping the cause.
func Open(filename string) (*Torrent, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &NewTorrentFromFileError{Path: filename, Err: err}
	}

	t, err := ParseTorrent(data)
	if err != nil {
		return nil, &NewTorrentFromFileError{Path: filename, Err: err}
	}
	return t, nil
}

// ParseTorrent decodes metainfo bytes, assembles the Torrent and computes its
// info hash.
func ParseTorrent(data []byte) (*Torrent, error) {
	metainfo, err := bencode.DecodeDict(data)
	if err != nil {
		return nil, err
	}

	torrent, err := Assemble(metainfo)
	if err != nil {
		return nil, err
	}

	torrent.InfoHash, err = infoHash(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract info dictionary: %w", err)
	}

	return torrent, nil
}

// Assemble converts a decoded metainfo dictionary into a Torrent. It fails on
// the first missing or invalid required field and never returns a partial
// Torrent.
func Assemble(metainfo bencode.Dict) (*Torrent, error) {
	torrent := &Torrent{}

	announce, ok := metainfo.Text("announce")
	if !ok {
		return nil, &MissingRequiredFieldError{Field: "announce"}
	}
	torrent.Trackers = parseTrackers(announce, metainfo)

	// Optional fields with the wrong type are treated as absent
	torrent.Comment, _ = metainfo.Text("comment")
	torrent.CreatedBy, _ = metainfo.Text("created by")
	torrent.Encoding, _ = metainfo.Text("encoding")
	if date, ok := metainfo.Int("creation date"); ok {
		torrent.CreationDate = time.Unix(date, 0).UTC()
	}

	info, ok := metainfo.Dict("info")
	if !ok {
		return nil, &MissingRequiredFieldError{Field: "info"}
	}

	torrent.IsPrivate = parsePrivate(info)
	torrent.Name, _ = info.Text("name")

	var err error
	if files, ok := info.List("files"); ok {
		torrent.multiFile = true
		torrent.Files, err = parseMultiFile(files)
	} else {
		torrent.Files, err = parseSingleFile(info)
	}
	if err != nil {
		return nil, err
	}
	totalSize := torrent.TotalSize()

	pieceLength, ok := info.Int("piece length")
	if !ok {
		return nil, &MissingRequiredFieldError{Field: "piece length"}
	}
	if pieceLength <= 0 {
		return nil, &InvalidFieldError{Field: "piece length", Reason: fmt.Sprintf("must be positive, got %d", pieceLength)}
	}
	torrent.PieceLength = pieceLength

	rawPieces, ok := info.Bytes("pieces")
	if !ok {
		return nil, &MissingRequiredFieldError{Field: "pieces"}
	}

	hashes, err := piece.SplitHashes(rawPieces)
	if err != nil {
		return nil, &InvalidFieldError{Field: "pieces", Reason: "malformed hash list", Err: err}
	}

	torrent.Pieces, err = piece.Layout(hashes, pieceLength, totalSize)
	if err != nil {
		return nil, &InvalidFieldError{Field: "pieces", Reason: "does not describe the content", Err: err}
	}

	torrent.mapper = file.NewMapper(torrent.Files, pieceLength, totalSize)
	return torrent, nil
}

// parseTrackers returns announce followed by every announce-list entry not
// already present. Malformed announce-list tiers are skipped.
func parseTrackers(announce string, metainfo bencode.Dict) []string {
	trackers := []string{announce}
	seen := map[string]bool{announce: true}

	tiers, _ := metainfo.List("announce-list")
	for _, tierValue := range tiers {
		tier, ok := tierValue.(bencode.List)
		if !ok {
			continue
		}
		for _, urlValue := range tier {
			url, ok := urlValue.(bencode.String)
			if !ok || len(url) == 0 || seen[string(url)] {
				continue
			}
			seen[string(url)] = true
			trackers = append(trackers, string(url))
		}
	}

	return trackers
}

func parsePrivate(info bencode.Dict) bool {
	private, ok := info.Int("private")
	return ok && private != 0
}

func parseSingleFile(info bencode.Dict) ([]file.Info, error) {
	name, ok := info.Text("name")
	if !ok {
		return nil, &MissingRequiredFieldError{Field: "name"}
	}

	length, ok := info.Int("length")
	if !ok {
		return nil, &MissingRequiredFieldError{Field: "length"}
	}
	if length < 0 {
		return nil, &InvalidFieldError{Field: "length", Reason: fmt.Sprintf("must not be negative, got %d", length)}
	}

	path, err := file.JoinPath([]string{name})
	if err != nil {
		return nil, &InvalidFieldError{Field: "name", Reason: "unsafe file name", Err: err}
	}

	return []file.Info{{Path: path, Size: length, Offset: 0}}, nil
}

func parseMultiFile(entries bencode.List) ([]file.Info, error) {
	var files []file.Info
	var offset int64

	for _, entry := range entries {
		fileMap, ok := entry.(bencode.Dict)
		if !ok {
			continue
		}

		segments, err := parsePath(fileMap)
		if err != nil {
			return nil, err
		}

		length, ok := fileMap.Int("length")
		if !ok {
			return nil, &MissingRequiredFieldError{Field: "length"}
		}
		if length < 0 {
			return nil, &InvalidFieldError{Field: "length", Reason: fmt.Sprintf("must not be negative, got %d", length)}
		}
		if length > math.MaxInt64-offset {
			return nil, &InvalidFieldError{Field: "length", Reason: "total size overflows"}
		}

		path, err := file.JoinPath(segments)
		if err != nil {
			return nil, &InvalidFieldError{Field: "path", Reason: "unsafe file path", Err: err}
		}

		files = append(files, file.Info{
			Path:   path,
			Size:   length,
			Offset: offset,
		})

		offset += length
	}

	return files, nil
}

// parsePath accepts the list-of-segments form and a single text value
// separated by '/'.
func parsePath(fileMap bencode.Dict) ([]string, error) {
	switch path := fileMap["path"].(type) {
	case bencode.List:
		segments := make([]string, 0, len(path))
		for _, component := range path {
			s, ok := component.(bencode.String)
			if !ok {
				return nil, &MissingRequiredFieldError{Field: "path"}
			}
			segments = append(segments, string(s))
		}
		return segments, nil
	case bencode.String:
		return strings.Split(string(path), "/"), nil
	default:
		return nil, &MissingRequiredFieldError{Field: "path"}
	}
}
