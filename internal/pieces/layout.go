package piece

import (
	"errors"
	"fmt"
)

var (
	ErrHashesLength  = errors.New("pieces length must be a multiple of 20")
	ErrCountMismatch = errors.New("piece hash count does not match content size")
)

// Count returns ceil(totalLength / pieceLength).
func Count(totalLength, pieceLength int64) int64 {
	if pieceLength <= 0 || totalLength <= 0 {
		return 0
	}
	return ceilDiv(totalLength, pieceLength)
}

// ceilDiv divides rounding up without forming n+d-1, which overflows near
// math.MaxInt64. n and d must be positive.
func ceilDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// SplitHashes cuts the concatenated digests into 20-byte records
func SplitHashes(raw []byte) ([][HashSize]byte, error) {
	if len(raw)%HashSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrHashesLength, len(raw))
	}

	hashes := make([][HashSize]byte, len(raw)/HashSize)
	for i := range hashes {
		copy(hashes[i][:], raw[i*HashSize:(i+1)*HashSize])
	}
	return hashes, nil
}

// Layout builds one piece per hash over totalLength bytes of content
func Layout(hashes [][HashSize]byte, pieceLength, totalLength int64) ([]*Piece, error) {
	if pieceLength <= 0 {
		return nil, fmt.Errorf("%w: piece length %d", ErrInvalidSize, pieceLength)
	}

	expected := Count(totalLength, pieceLength)
	if int64(len(hashes)) != expected {
		return nil, fmt.Errorf("%w: %d hashes for %d pieces", ErrCountMismatch, len(hashes), expected)
	}

	pieces := make([]*Piece, len(hashes))
	for i, hash := range hashes {
		length := pieceLength
		// Last piece might be smaller
		if i == len(hashes)-1 {
			lastPieceLength := totalLength % pieceLength
			if lastPieceLength != 0 {
				length = lastPieceLength
			}
		}

		p, err := New(i, length, hash[:])
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		pieces[i] = p
	}

	return pieces, nil
}
