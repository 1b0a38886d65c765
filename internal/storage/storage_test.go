package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

func TestSaveLoadGrid(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "snapshots"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g := grid.NewMem(40, 30)
	g.SetCell(0, 0, grid.Cell{Type: 600, FrameX: -18, FrameY: 198, Color: 7, Active: true})
	g.SetCell(39, 29, grid.Cell{Type: 65535, Wall: 300, Liquid: 255, Slope: 3, Half: true, Actuated: true})
	g.SetCell(12, 5, grid.Cell{Type: 2, Active: true, Half: true})

	if err := s.SaveGrid("world", g); err != nil {
		t.Fatalf("SaveGrid: %v", err)
	}
	if _, err := os.Stat(s.Path("world") + ".tmp"); !errors.Is(err, fs.ErrNotExist) {
		t.Error("temp file left behind")
	}

	restored := grid.NewMem(40, 30)
	if err := s.LoadGrid("world", restored); err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}
	if !slices.Equal(g.Cells(), restored.Cells()) {
		t.Error("restored grid differs from the saved one")
	}
}

func TestLoadGridSizeMismatch(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGrid("small", grid.NewMem(4, 4)); err != nil {
		t.Fatal(err)
	}

	err = s.LoadGrid("small", grid.NewMem(5, 4))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("err = %v, want ErrSizeMismatch", err)
	}
}

func TestLoadGridMissing(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadGrid("nope", grid.NewMem(1, 1)); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadGridCorrupt(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path("bad"), []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadGrid("bad", grid.NewMem(1, 1)); err == nil {
		t.Error("expected error for corrupt snapshot")
	}
}

func TestCellRecord(t *testing.T) {
	c := grid.Cell{Type: 323, FrameX: 66, FrameY: -22, Color: 30, Wall: 2, Liquid: 128, Active: true, Half: true, Slope: 1}
	var rec [recordSize]byte
	putCell(rec[:], c)
	if got := getCell(rec[:]); got != c {
		t.Errorf("getCell(putCell(%+v)) = %+v", c, got)
	}
}
