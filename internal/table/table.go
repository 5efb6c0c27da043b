// Package table persists and re-reads the n, |A|, |A+A| result table.
//
// The on-disk format is a header line followed by one comma-separated row
// per n, optionally wrapped in gzip, zstd or lz4. Writes are atomic: the table is
// staged in a temporary file next to its destination and renamed into place
// only after it has been flushed and synced.
package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/agbru/sumset/internal/dyadic"
	apperrors "github.com/agbru/sumset/internal/errors"
)

// Header is the first line of every table.
const Header = "n, |A|, |A+A|"

// DefaultOutDir is the directory tables are written to when no path is given.
const DefaultOutDir = "data"

// Compression selects the codec wrapped around the table text.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
)

// ParseCompression resolves a --compress flag value.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, apperrors.NewConfigError("unknown compression %q (available: none, gzip, zstd, lz4)", s)
	}
}

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// Suffix returns the file extension appended for c.
func (c Compression) Suffix() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// DefaultPath returns <outDir>/ads_sizes_<n>.csv.
func DefaultPath(outDir string, n uint64) string {
	if outDir == "" {
		outDir = DefaultOutDir
	}
	return filepath.Join(outDir, fmt.Sprintf("ads_sizes_%d.csv", n))
}

// Encode writes the header and one line per row to w.
func Encode(w io.Writer, rows []dyadic.Sizes) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	var line []byte
	for _, r := range rows {
		line = line[:0]
		line = strconv.AppendUint(line, r.N, 10)
		line = append(line, ", "...)
		line = strconv.AppendUint(line, r.A, 10)
		line = append(line, ", "...)
		line = strconv.AppendUint(line, r.AA, 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write persists rows at path, appending the compression suffix, and
// returns the final file name. Missing parent directories are created. On
// failure no file is left at the destination and the temporary file is
// removed; the error is a PersistError.
func Write(path string, rows []dyadic.Sizes, c Compression) (string, error) {
	final := path + c.Suffix()
	if err := writeAtomic(final, func(w io.Writer) error {
		return encodeCompressed(w, rows, c)
	}); err != nil {
		return "", apperrors.PersistError{Path: final, Cause: err}
	}
	return final, nil
}

func encodeCompressed(w io.Writer, rows []dyadic.Sizes, c Compression) error {
	switch c {
	case Gzip:
		zw := gzip.NewWriter(w)
		if err := Encode(zw, rows); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if err := Encode(zw, rows); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	case LZ4:
		zw := lz4.NewWriter(w)
		if err := Encode(zw, rows); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		return Encode(w, rows)
	}
}

func writeAtomic(filename string, writeFunc func(io.Writer) error) (err error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Same directory as the target so the rename cannot cross filesystems.
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0o644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, derr := os.Open(dir); derr == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Read parses a table written by Write. The codec is detected from the
// content, so renamed files are still readable.
func Read(path string) ([]dyadic.Sizes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.PersistError{Path: path, Cause: err}
	}
	defer f.Close()

	rows, err := decodeAny(bufio.NewReader(f))
	if err != nil {
		return nil, apperrors.PersistError{Path: path, Cause: err}
	}
	return rows, nil
}

func decodeAny(br *bufio.Reader) ([]dyadic.Sizes, error) {
	magic, _ := br.Peek(len(zstdMagic))
	switch {
	case hasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return Decode(zr)
	case hasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return Decode(zr)
	case hasPrefix(magic, lz4Magic):
		return Decode(lz4.NewReader(br))
	default:
		return Decode(br)
	}
}

func hasPrefix(b, prefix []byte) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == string(prefix)
}

// ErrBadHeader is returned when the first line is not Header.
var ErrBadHeader = errors.New("missing table header")

// Decode parses the textual table format from r.
func Decode(r io.Reader) ([]dyadic.Sizes, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrBadHeader
		}
		return nil, err
	}
	if strings.Join(header, ", ") != Header {
		return nil, fmt.Errorf("%w: got %q", ErrBadHeader, strings.Join(header, ", "))
	}

	var rows []dyadic.Sizes
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		var vals [3]uint64
		for i, field := range rec {
			v, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vals[i] = v
		}
		if vals[0] == 0 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: n must be positive", line)
		}
		rows = append(rows, dyadic.Sizes{N: vals[0], A: vals[1], AA: vals[2]})
	}
}
