package torrent

import (
	"errors"
	"time"

	"github.com/jensmcatanho/hermes/internal/file"
	piece "github.com/jensmcatanho/hermes/internal/pieces"
)

// ErrNotAssembled is returned by piece queries on a Torrent that was not
// produced by Assemble.
var ErrNotAssembled = errors.New("torrent has no piece layout")

// Torrent represents a parsed and validated torrent file
type Torrent struct {
	Name         string
	Comment      string
	CreatedBy    string
	Encoding     string
	CreationDate time.Time
	Trackers     []string
	IsPrivate    bool

	PieceLength int64
	Pieces      []*piece.Piece
	Files       []file.Info

	// Calculated fields (not from bencode)
	InfoHash InfoHash

	multiFile bool
	mapper    *file.Mapper
}

// IsMultiFile returns true if the info dictionary listed its files
func (t *Torrent) IsMultiFile() bool {
	return t.multiFile
}

// TotalSize returns the length of the virtual concatenation of all files
func (t *Torrent) TotalSize() int64 {
	var total int64
	for _, f := range t.Files {
		total += f.Size
	}
	return total
}

// PieceCount returns the number of pieces
func (t *Torrent) PieceCount() int {
	return len(t.Pieces)
}

// FileRanges returns the file ranges covered by a piece
func (t *Torrent) FileRanges(pieceIndex int) ([]file.FileRange, error) {
	if t.mapper == nil {
		return nil, ErrNotAssembled
	}

	mapping, err := t.mapper.GetPieceMapping(pieceIndex)
	if err != nil {
		return nil, err
	}
	return mapping.FileRanges, nil
}

// VerifyPiece checks data against the hash of piece pieceIndex and records the
// result on the piece. Data that is not exactly as long as the file ranges
// the piece covers is an error.
func (t *Torrent) VerifyPiece(pieceIndex int, data []byte) (bool, error) {
	if t.mapper == nil {
		return false, ErrNotAssembled
	}
	if err := t.mapper.ValidatePieceData(pieceIndex, data); err != nil {
		return false, err
	}
	return t.Pieces[pieceIndex].Verify(data), nil
}
