package piece

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
)

const (
	BlockSize = 16384 // 16KB blocks
	HashSize  = sha1.Size

	// MaxSize bounds a single piece so its block list stays allocatable.
	MaxSize = 1 << 30
)

var (
	ErrInvalidHash = errors.New("piece hash must be 20 bytes")
	ErrInvalidSize = errors.New("piece size must be positive and at most 1 GiB")
)

// Piece represents a single piece of the torrent
type Piece struct {
	Index    int
	Size     int64
	Hash     [HashSize]byte
	Verified bool
	Blocks   []Block
}

// Block represents a block within a piece
type Block struct {
	Begin    int64
	Size     int64
	Acquired bool
}

// New creates a piece and splits it into blocks
func New(index int, size int64, hash []byte) (*Piece, error) {
	if len(hash) != HashSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHash, len(hash))
	}
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	p := &Piece{
		Index:  index,
		Size:   size,
		Blocks: splitBlocks(size),
	}
	copy(p.Hash[:], hash)

	return p, nil
}

func splitBlocks(size int64) []Block {
	numBlocks := ceilDiv(size, BlockSize)
	blocks := make([]Block, numBlocks)

	for i := int64(0); i < numBlocks; i++ {
		begin := i * BlockSize
		blockSize := int64(BlockSize)

		// Last block might be smaller
		if begin+blockSize > size {
			blockSize = size - begin
		}

		blocks[i] = Block{
			Begin: begin,
			Size:  blockSize,
		}
	}

	return blocks
}

// MarkAcquired records that the block starting at begin has arrived
func (p *Piece) MarkAcquired(begin int64) error {
	if begin < 0 || begin%BlockSize != 0 {
		return fmt.Errorf("block begin %d is not aligned to %d", begin, BlockSize)
	}

	blockIndex := begin / BlockSize
	if blockIndex >= int64(len(p.Blocks)) {
		return fmt.Errorf("block index out of range: %d", blockIndex)
	}

	p.Blocks[blockIndex].Acquired = true
	return nil
}

// Complete returns true once every block has been acquired
func (p *Piece) Complete() bool {
	for _, b := range p.Blocks {
		if !b.Acquired {
			return false
		}
	}
	return true
}

// MissingBlocks returns list of blocks that haven't been acquired
func (p *Piece) MissingBlocks() []Block {
	var missing []Block
	for _, b := range p.Blocks {
		if !b.Acquired {
			missing = append(missing, b)
		}
	}
	return missing
}

// Verify checks data against the expected hash and records the result.
func (p *Piece) Verify(data []byte) bool {
	if int64(len(data)) != p.Size {
		p.Verified = false
		return false
	}

	sum := sha1.Sum(data)
	p.Verified = bytes.Equal(sum[:], p.Hash[:])
	return p.Verified
}

// Reset forgets acquired blocks and verification state
func (p *Piece) Reset() {
	for i := range p.Blocks {
		p.Blocks[i].Acquired = false
	}
	p.Verified = false
}
