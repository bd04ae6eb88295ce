package locode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoSourceFiles is returned when a source directory holds no CSV files.
var ErrNoSourceFiles = errors.New("no code list files found")

// readSourceDir reads every *.csv file of dir in file name order and
// returns their rows in file order, then row order.
func readSourceDir(dir string, enc Encoding, log *slog.Logger) ([]Row, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var rows []Row
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		fileRows, err := readSourceFile(filepath.Join(dir, entry.Name()), enc)
		if err != nil {
			return nil, 0, err
		}
		log.Info("read code list file", slog.String("file", entry.Name()), slog.Int("rows", len(fileRows)))
		rows = append(rows, fileRows...)
		files++
	}
	if files == 0 {
		return nil, 0, fmt.Errorf("%s: %w", dir, ErrNoSourceFiles)
	}
	return rows, files, nil
}

func readSourceFile(path string, enc Encoding) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readRows(f, enc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// readRows decodes a code list file. Rows may have any number of columns;
// short rows read as absent columns.
func readRows(r io.Reader, enc Encoding) ([]Row, error) {
	dr, err := decodingReader(r, enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(dr)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, Row(record))
	}
	return rows, nil
}

// decodingReader converts r to UTF-8. A leading UTF-8 byte order mark is
// dropped.
func decodingReader(r io.Reader, enc Encoding) (io.Reader, error) {
	switch enc {
	case EncodingUTF8, "":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported source encoding %q", enc)
	}
}

func readSubdivisionFile(path string, enc Encoding) ([]Subdivision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()

	dr, err := decodingReader(f, enc)
	if err != nil {
		return nil, err
	}
	subdivisions, err := readSubdivisions(dr)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return subdivisions, nil
}
