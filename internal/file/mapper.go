package file

import (
	"fmt"

	piece "github.com/jensmcatanho/hermes/internal/pieces"
)

// FileRange represents a range of bytes within a file
type FileRange struct {
	FileIndex int    // Index in the torrent's file list
	FilePath  string // Relative path of the file
	Offset    int64  // Offset within the file
	Length    int64  // Number of bytes
}

// PieceFileMap represents the mapping of a piece to files
type PieceFileMap struct {
	PieceIndex int
	FileRanges []FileRange
}

// Mapper handles piece-to-file mapping calculations
type Mapper struct {
	files       []Info
	pieceLength int64
	totalLength int64
	pieceMaps   []PieceFileMap
}

// NewMapper creates a new file mapper
func NewMapper(files []Info, pieceLength int64, totalLength int64) *Mapper {
	mapper := &Mapper{
		files:       files,
		pieceLength: pieceLength,
		totalLength: totalLength,
	}

	mapper.buildFileMappings()
	return mapper
}

// buildFileMappings pre-calculates piece-to-file mappings
func (m *Mapper) buildFileMappings() {
	totalPieces := int(piece.Count(m.totalLength, m.pieceLength))
	m.pieceMaps = make([]PieceFileMap, totalPieces)

	for pieceIndex := 0; pieceIndex < totalPieces; pieceIndex++ {
		m.pieceMaps[pieceIndex] = m.calculatePieceMapping(pieceIndex)
	}
}

// calculatePieceMapping calculates which files a piece overlaps
func (m *Mapper) calculatePieceMapping(pieceIndex int) PieceFileMap {
	pieceStart := int64(pieceIndex) * m.pieceLength
	pieceEnd := pieceStart + min(m.pieceLength, m.totalLength-pieceStart)

	var fileRanges []FileRange

	for fileIndex, file := range m.files {
		fileStart := file.Offset
		fileEnd := file.Offset + file.Size

		// Empty files and files outside the piece contribute nothing
		if pieceStart < fileEnd && pieceEnd > fileStart {
			overlapStart := max(pieceStart, fileStart)
			overlapEnd := min(pieceEnd, fileEnd)

			fileRanges = append(fileRanges, FileRange{
				FileIndex: fileIndex,
				FilePath:  file.Path,
				Offset:    overlapStart - fileStart,
				Length:    overlapEnd - overlapStart,
			})
		}
	}

	return PieceFileMap{
		PieceIndex: pieceIndex,
		FileRanges: fileRanges,
	}
}

// GetPieceMapping returns the file mapping for a specific piece
func (m *Mapper) GetPieceMapping(pieceIndex int) (PieceFileMap, error) {
	if pieceIndex < 0 || pieceIndex >= len(m.pieceMaps) {
		return PieceFileMap{}, fmt.Errorf("invalid piece index: %d", pieceIndex)
	}

	return m.pieceMaps[pieceIndex], nil
}

// ValidatePieceData checks that data is exactly as long as the file ranges
// the piece covers
func (m *Mapper) ValidatePieceData(pieceIndex int, data []byte) error {
	mapping, err := m.GetPieceMapping(pieceIndex)
	if err != nil {
		return err
	}

	expectedLength := int64(0)
	for _, fileRange := range mapping.FileRanges {
		expectedLength += fileRange.Length
	}

	if int64(len(data)) != expectedLength {
		return fmt.Errorf("piece data length mismatch: expected %d, got %d",
			expectedLength, len(data))
	}

	return nil
}
