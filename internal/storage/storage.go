package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

// ErrSizeMismatch is returned when a snapshot does not fit the target grid.
var ErrSizeMismatch = errors.New("snapshot size mismatch")

const (
	snapshotVersion = 1
	snapshotExt     = ".grid.zst"
	recordSize      = 12
)

// Header is the JSON line opening every snapshot.
type Header struct {
	Version int `json:"version"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// Storage keeps zstd-compressed grid snapshots in a directory.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a Storage rooted at dir, creating it if needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Storage{dir: dir, log: log}, nil
}

// Path returns the file a snapshot called name is stored in.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name+snapshotExt)
}

// SaveGrid writes g to the snapshot called name atomically.
func (s *Storage) SaveGrid(name string, g *grid.Mem) error {
	w, h := g.Size()
	path := s.Path(name)

	err := atomicWrite(path, func(out io.Writer) error {
		enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("create encoder: %w", err)
		}
		bw := bufio.NewWriterSize(enc, 64*1024)

		if err := writeHeader(bw, Header{Version: snapshotVersion, Width: w, Height: h}); err != nil {
			enc.Close()
			return err
		}
		var rec [recordSize]byte
		for _, c := range g.Cells() {
			putCell(rec[:], c)
			if _, err := bw.Write(rec[:]); err != nil {
				enc.Close()
				return fmt.Errorf("write cell: %w", err)
			}
		}
		if err := bw.Flush(); err != nil {
			enc.Close()
			return fmt.Errorf("flush: %w", err)
		}
		return enc.Close()
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}

	s.log.Info("saved grid snapshot", "name", name, "width", w, "height", h)
	return nil
}

// LoadGrid replaces g's cells with the snapshot called name. The snapshot
// must have g's dimensions.
func (s *Storage) LoadGrid(name string, g *grid.Mem) error {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return fmt.Errorf("open snapshot %s: %w", name, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReaderSize(dec, 64*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("read snapshot header: %w", err)
	}
	var hdr Header
	if err := json.Unmarshal(line, &hdr); err != nil {
		return fmt.Errorf("parse snapshot header: %w", err)
	}
	if hdr.Version != snapshotVersion {
		return fmt.Errorf("snapshot %s: unsupported version %d", name, hdr.Version)
	}
	if w, h := g.Size(); hdr.Width != w || hdr.Height != h {
		return fmt.Errorf("snapshot %s is %dx%d, grid is %dx%d: %w", name, hdr.Width, hdr.Height, w, h, ErrSizeMismatch)
	}

	cells := make([]grid.Cell, hdr.Width*hdr.Height)
	var rec [recordSize]byte
	for i := range cells {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return fmt.Errorf("read cell %d: %w", i, err)
		}
		cells[i] = getCell(rec[:])
	}
	if !g.Load(cells) {
		return fmt.Errorf("snapshot %s: %w", name, ErrSizeMismatch)
	}

	s.log.Info("loaded grid snapshot", "name", name, "width", hdr.Width, "height", hdr.Height)
	return nil
}

func writeHeader(w io.Writer, h Header) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

const (
	flagActive = 1 << iota
	flagActuated
	flagHalf
)

// putCell encodes c as a fixed-width little-endian record.
func putCell(b []byte, c grid.Cell) {
	binary.LittleEndian.PutUint16(b[0:], c.Type)
	binary.LittleEndian.PutUint16(b[2:], uint16(c.FrameX))
	binary.LittleEndian.PutUint16(b[4:], uint16(c.FrameY))
	binary.LittleEndian.PutUint16(b[6:], c.Wall)
	b[8] = c.Color
	b[9] = c.Liquid
	b[10] = c.Slope

	var flags byte
	if c.Active {
		flags |= flagActive
	}
	if c.Actuated {
		flags |= flagActuated
	}
	if c.Half {
		flags |= flagHalf
	}
	b[11] = flags
}

func getCell(b []byte) grid.Cell {
	return grid.Cell{
		Type:     binary.LittleEndian.Uint16(b[0:]),
		FrameX:   int16(binary.LittleEndian.Uint16(b[2:])),
		FrameY:   int16(binary.LittleEndian.Uint16(b[4:])),
		Wall:     binary.LittleEndian.Uint16(b[6:]),
		Color:    b[8],
		Liquid:   b[9],
		Slope:    b[10],
		Active:   b[11]&flagActive != 0,
		Actuated: b[11]&flagActuated != 0,
		Half:     b[11]&flagHalf != 0,
	}
}

// atomicWrite streams into a temp file and renames it over path.
func atomicWrite(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
