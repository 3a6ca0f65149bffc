package lut

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/glasbey/internal/cam02"
	"github.com/klauspost/compress/zstd"
)

// Cache file layout, zstd-compressed as a whole:
//
//	Magic (4 bytes) "GLBY"
//	FormatVersion (4 bytes)
//	Resolution (4 bytes)
//	ModelVersion (2-byte length + bytes)
//	Count (8 bytes)
//	RGB triplets (3·Count bytes, canonical index order)
//	UCS coordinates (3·Count float32, little-endian)
//	CRC32-IEEE (4 bytes) over the two arrays
const (
	cacheMagic         = 0x474C4259 // "GLBY"
	cacheFormatVersion = 1
)

// Store persists candidate tables keyed by (resolution, conversion model
// version). It is the only owner of the on-disk cache; corruption is never
// surfaced, a bad file is simply rebuilt.
type Store struct {
	dir    string
	logger hclog.Logger
}

// DefaultDir returns the default cache directory.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "glasbey"), nil
	}
	return filepath.Join(cacheDir, "glasbey"), nil
}

// NewStore creates a store rooted at dir. An empty dir selects DefaultDir.
func NewStore(dir string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{dir: dir, logger: logger.Named("lut")}
}

func (s *Store) path(resolution int) (string, error) {
	dir := s.dir
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, fmt.Sprintf("candidates_%d.lut", resolution)), nil
}

// LoadOrBuild returns the cached table for the given resolution, or builds
// it and writes it back when the cache is missing, stale or unreadable.
func (s *Store) LoadOrBuild(ctx context.Context, resolution int, progress Progress) (*Table, error) {
	if resolution < 2 || resolution > 256 {
		return nil, fmt.Errorf("resolution %d out of range [2,256]", resolution)
	}
	path, err := s.path(resolution)
	if err != nil {
		return nil, err
	}

	if t, err := readFile(path, resolution); err == nil {
		s.logger.Debug("candidate table loaded from cache", "path", path, "candidates", t.Len())
		return t, nil
	} else if !os.IsNotExist(err) {
		s.logger.Warn("candidate table cache invalid, rebuilding", "path", path, "error", err)
	} else {
		s.logger.Info("candidate table cache missing, building", "path", path)
	}

	t, err := Build(ctx, resolution, progress)
	if err != nil {
		return nil, err
	}
	if err := s.write(path, t); err != nil {
		// The in-memory table is still good; the next run pays the
		// build cost again.
		s.logger.Warn("failed to persist candidate table", "path", path, "error", err)
	} else {
		s.logger.Debug("candidate table persisted", "path", path)
	}
	return t, nil
}

func (s *Store) write(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	// Write to a temp file and rename so readers never observe a partial
	// table.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer os.Remove(tmp)

	if err := encodeTable(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish cache file: %w", err)
	}
	return nil
}

func encodeTable(w io.Writer, t *Table) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(zw, 1<<20)

	model := []byte(cam02.ModelVersion)
	header := make([]byte, 0, 32+len(model))
	header = binary.LittleEndian.AppendUint32(header, cacheMagic)
	header = binary.LittleEndian.AppendUint32(header, cacheFormatVersion)
	header = binary.LittleEndian.AppendUint32(header, uint32(t.resolution))
	header = binary.LittleEndian.AppendUint16(header, uint16(len(model)))
	header = append(header, model...)
	header = binary.LittleEndian.AppendUint64(header, uint64(t.Len()))
	if _, err := bw.Write(header); err != nil {
		return err
	}

	crc := crc32.NewIEEE()
	body := io.MultiWriter(bw, crc)

	res := t.resolution
	row := make([]byte, 3*res)
	for r := 0; r < res; r++ {
		for g := 0; g < res; g++ {
			for b := 0; b < res; b++ {
				row[3*b] = t.grid[r]
				row[3*b+1] = t.grid[g]
				row[3*b+2] = t.grid[b]
			}
			if _, err := body.Write(row); err != nil {
				return err
			}
		}
	}

	buf := make([]byte, 0, 1<<16)
	for _, v := range t.coords {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		if len(buf) == cap(buf) {
			if _, err := body.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		if _, err := body.Write(buf); err != nil {
			return err
		}
	}

	if _, err := bw.Write(binary.LittleEndian.AppendUint32(nil, crc.Sum32())); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return zw.Close()
}

func readFile(path string, resolution int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeTable(f, resolution)
}

func decodeTable(r io.Reader, resolution int) (*Table, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	br := bufio.NewReaderSize(zr, 1<<20)

	var fixed [14]byte
	if _, err := io.ReadFull(br, fixed[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if magic := binary.LittleEndian.Uint32(fixed[0:4]); magic != cacheMagic {
		return nil, fmt.Errorf("bad magic %#x", magic)
	}
	if v := binary.LittleEndian.Uint32(fixed[4:8]); v != cacheFormatVersion {
		return nil, fmt.Errorf("unsupported format version %d", v)
	}
	if res := int(binary.LittleEndian.Uint32(fixed[8:12])); res != resolution {
		return nil, fmt.Errorf("resolution mismatch: file has %d, want %d", res, resolution)
	}
	model := make([]byte, binary.LittleEndian.Uint16(fixed[12:14]))
	if _, err := io.ReadFull(br, model); err != nil {
		return nil, fmt.Errorf("read model version: %w", err)
	}
	if string(model) != cam02.ModelVersion {
		return nil, fmt.Errorf("model version mismatch: file has %q, want %q", model, cam02.ModelVersion)
	}
	var countBuf [8]byte
	if _, err := io.ReadFull(br, countBuf[:]); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	n := resolution * resolution * resolution
	if count := binary.LittleEndian.Uint64(countBuf[:]); count != uint64(n) {
		return nil, fmt.Errorf("candidate count mismatch: file has %d, want %d", count, n)
	}

	crc := crc32.NewIEEE()
	if err := checkRGB(br, crc, resolution); err != nil {
		return nil, err
	}

	coords, err := readCoords(br, crc, n)
	if err != nil {
		return nil, err
	}

	var footer [4]byte
	if _, err := io.ReadFull(br, footer[:]); err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}
	if got := binary.LittleEndian.Uint32(footer[:]); got != crc.Sum32() {
		return nil, fmt.Errorf("checksum mismatch: file has %#x, computed %#x", got, crc.Sum32())
	}
	return New(resolution, coords)
}

// checkRGB consumes the stored RGB array, verifying it is the canonical grid
// in canonical index order.
func checkRGB(r io.Reader, crc hash.Hash32, resolution int) error {
	grid := Grid(resolution)
	buf := make([]byte, 3*resolution)
	idx := 0
	for rr := 0; rr < resolution; rr++ {
		for g := 0; g < resolution; g++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				return fmt.Errorf("read rgb array: %w", err)
			}
			crc.Write(buf)
			for b := 0; b < resolution; b++ {
				if buf[3*b] != grid[rr] || buf[3*b+1] != grid[g] || buf[3*b+2] != grid[b] {
					return fmt.Errorf("rgb array out of canonical order at index %d", idx+b)
				}
			}
			idx += resolution
		}
	}
	return nil
}

func readCoords(r io.Reader, crc hash.Hash32, n int) ([]float32, error) {
	coords := make([]float32, 3*n)
	buf := make([]byte, 1<<16)
	next := 0
	remaining := 4 * len(coords)
	for remaining > 0 {
		chunk := len(buf)
		if chunk > remaining {
			chunk = remaining
		}
		if _, err := io.ReadFull(r, buf[:chunk]); err != nil {
			return nil, fmt.Errorf("read coordinate array: %w", err)
		}
		crc.Write(buf[:chunk])
		for off := 0; off < chunk; off += 4 {
			coords[next] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
			next++
		}
		remaining -= chunk
	}
	return coords, nil
}
