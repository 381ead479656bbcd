package piece

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"testing"
)

func TestNewSplitsBlocks(t *testing.T) {
	tests := []struct {
		name       string
		size       int64
		wantBlocks []int64
	}{
		{"single small block", 100, []int64{100}},
		{"exactly one block", BlockSize, []int64{BlockSize}},
		{"one byte over", BlockSize + 1, []int64{BlockSize, 1}},
		{"even split", 4 * BlockSize, []int64{BlockSize, BlockSize, BlockSize, BlockSize}},
		{"uneven split", 2*BlockSize + 300, []int64{BlockSize, BlockSize, 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(0, tt.size, make([]byte, HashSize))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			if len(p.Blocks) != len(tt.wantBlocks) {
				t.Fatalf("Expected %d blocks, got %d", len(tt.wantBlocks), len(p.Blocks))
			}

			var begin, total int64
			for i, b := range p.Blocks {
				if b.Size != tt.wantBlocks[i] {
					t.Errorf("block %d: expected size %d, got %d", i, tt.wantBlocks[i], b.Size)
				}
				if b.Begin != begin {
					t.Errorf("block %d: expected begin %d, got %d", i, begin, b.Begin)
				}
				if b.Acquired {
					t.Errorf("block %d: should start not acquired", i)
				}
				begin += b.Size
				total += b.Size
			}
			if total != tt.size {
				t.Errorf("blocks cover %d bytes, want %d", total, tt.size)
			}
			if p.Verified {
				t.Error("piece should start unverified")
			}
		})
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(0, 10, make([]byte, 19)); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("Expected ErrInvalidHash for 19-byte hash, got %v", err)
	}
	if _, err := New(0, 10, make([]byte, 21)); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("Expected ErrInvalidHash for 21-byte hash, got %v", err)
	}
	if _, err := New(0, 0, make([]byte, HashSize)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize for zero size, got %v", err)
	}
	if _, err := New(0, MaxSize+1, make([]byte, HashSize)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize above MaxSize, got %v", err)
	}

	p, err := New(0, MaxSize, make([]byte, HashSize))
	if err != nil {
		t.Fatalf("New(MaxSize): %v", err)
	}
	if len(p.Blocks) != MaxSize/BlockSize {
		t.Errorf("Expected %d blocks, got %d", MaxSize/BlockSize, len(p.Blocks))
	}
}

func TestNewCopiesHash(t *testing.T) {
	hash := bytes.Repeat([]byte{7}, HashSize)
	p, err := New(3, 10, hash)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hash[0] = 0
	if p.Hash[0] != 7 {
		t.Error("piece hash aliases the caller's slice")
	}
	if p.Index != 3 {
		t.Errorf("Expected index 3, got %d", p.Index)
	}
}

func TestBlockBookkeeping(t *testing.T) {
	p, err := New(0, 3*BlockSize, make([]byte, HashSize))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := p.MarkAcquired(BlockSize); err != nil {
		t.Fatalf("MarkAcquired: %v", err)
	}
	missing := p.MissingBlocks()
	if len(missing) != 2 || missing[0].Begin != 0 || missing[1].Begin != 2*BlockSize {
		t.Errorf("unexpected missing blocks: %+v", missing)
	}
	if p.Complete() {
		t.Error("piece should not be complete")
	}

	if err := p.MarkAcquired(0); err != nil {
		t.Fatalf("MarkAcquired: %v", err)
	}
	if err := p.MarkAcquired(2 * BlockSize); err != nil {
		t.Fatalf("MarkAcquired: %v", err)
	}
	if !p.Complete() {
		t.Error("piece should be complete")
	}

	if err := p.MarkAcquired(3 * BlockSize); err == nil {
		t.Error("expected error for out of range block")
	}
	if err := p.MarkAcquired(5); err == nil {
		t.Error("expected error for unaligned block")
	}

	p.Reset()
	if len(p.MissingBlocks()) != 3 {
		t.Error("Reset should clear acquired blocks")
	}
}

func TestVerify(t *testing.T) {
	data := []byte("some piece content")
	sum := sha1.Sum(data)

	p, err := New(0, int64(len(data)), sum[:])
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !p.Verify(data) || !p.Verified {
		t.Error("expected piece to verify")
	}
	if p.Verify([]byte("some piece c0ntent")) || p.Verified {
		t.Error("expected corrupted data to fail verification")
	}
	if p.Verify(data[:5]) {
		t.Error("expected short data to fail verification")
	}
}
