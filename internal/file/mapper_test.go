package file

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMapperSpansFiles(t *testing.T) {
	files := []Info{
		{Path: "a", Size: 10, Offset: 0},
		{Path: "b", Size: 20, Offset: 10},
		{Path: "c", Size: 5, Offset: 30},
	}
	m := NewMapper(files, 16, 35)

	tests := []struct {
		piece int
		want  []FileRange
	}{
		{0, []FileRange{
			{FileIndex: 0, FilePath: "a", Offset: 0, Length: 10},
			{FileIndex: 1, FilePath: "b", Offset: 0, Length: 6},
		}},
		{1, []FileRange{
			{FileIndex: 1, FilePath: "b", Offset: 6, Length: 14},
			{FileIndex: 2, FilePath: "c", Offset: 0, Length: 2},
		}},
		{2, []FileRange{
			{FileIndex: 2, FilePath: "c", Offset: 2, Length: 3},
		}},
	}

	for _, tt := range tests {
		mapping, err := m.GetPieceMapping(tt.piece)
		if err != nil {
			t.Fatalf("GetPieceMapping(%d): %v", tt.piece, err)
		}
		if mapping.PieceIndex != tt.piece {
			t.Errorf("Expected piece index %d, got %d", tt.piece, mapping.PieceIndex)
		}
		if !reflect.DeepEqual(mapping.FileRanges, tt.want) {
			t.Errorf("piece %d: got %+v, want %+v", tt.piece, mapping.FileRanges, tt.want)
		}
	}

	if _, err := m.GetPieceMapping(3); err == nil {
		t.Error("expected error for out of range piece")
	}
	if _, err := m.GetPieceMapping(-1); err == nil {
		t.Error("expected error for negative piece")
	}
}

func TestMapperSkipsEmptyFiles(t *testing.T) {
	files := []Info{
		{Path: "empty", Size: 0, Offset: 0},
		{Path: "data", Size: 8, Offset: 0},
	}
	m := NewMapper(files, 8, 8)

	mapping, err := m.GetPieceMapping(0)
	if err != nil {
		t.Fatalf("GetPieceMapping: %v", err)
	}
	if len(mapping.FileRanges) != 1 || mapping.FileRanges[0].FilePath != "data" {
		t.Errorf("unexpected ranges: %+v", mapping.FileRanges)
	}
}

func TestMapperLastPieceNearMaxInt64(t *testing.T) {
	files := []Info{{Path: "big", Size: math.MaxInt64}}
	m := NewMapper(files, math.MaxInt64-1, math.MaxInt64)

	mapping, err := m.GetPieceMapping(1)
	if err != nil {
		t.Fatalf("GetPieceMapping: %v", err)
	}
	want := []FileRange{{FileIndex: 0, FilePath: "big", Offset: math.MaxInt64 - 1, Length: 1}}
	if !reflect.DeepEqual(mapping.FileRanges, want) {
		t.Errorf("got %+v, want %+v", mapping.FileRanges, want)
	}
	if _, err := m.GetPieceMapping(2); err == nil {
		t.Error("expected error for out of range piece")
	}
}

func TestValidatePieceData(t *testing.T) {
	m := NewMapper([]Info{{Path: "a", Size: 35}}, 16, 35)

	if err := m.ValidatePieceData(2, make([]byte, 3)); err != nil {
		t.Errorf("ValidatePieceData: %v", err)
	}
	if err := m.ValidatePieceData(2, make([]byte, 16)); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestJoinPath(t *testing.T) {
	got, err := JoinPath([]string{"dir", "sub", "file.txt"})
	if err != nil {
		t.Fatalf("JoinPath: %v", err)
	}
	if want := filepath.Join("dir", "sub", "file.txt"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	bad := [][]string{
		nil,
		{""},
		{"dir", ".."},
		{"."},
		{"a/b"},
		{"a\\b"},
	}
	for _, segments := range bad {
		if _, err := JoinPath(segments); err == nil {
			t.Errorf("JoinPath(%q) expected error", segments)
		}
	}
}
