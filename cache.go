package locode

import (
	"bytes"
	"compress/bzip2"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Cache file names inside the cache directory. Either may be bzip2
// compressed with a ".bz2" suffix.
const (
	locationsCacheFile    = "locations.dmp"
	subdivisionsCacheFile = "subdivisions.dmp"
)

// ErrEmptyCache is returned when a cache decodes to zero locations.
var ErrEmptyCache = errors.New("cache holds no locations")

// locationGob is used for GOB serialization. Functions are stored as their
// classifier text, e.g. "14B". Gob drops zero values, so IATA code presence
// is stored separately from the code.
type locationGob struct {
	CountryCode                           string
	CityCode                              string
	FullName                              string
	FullNameWithoutDiacritics             string
	AlternativeFullNames                  []string
	AlternativeFullNamesWithoutDiacritics []string
	Subdivision                           string
	FunctionClassifier                    string
	Status                                string
	Date                                  string
	IATACode                              string
	HasIATACode                           bool
	Coordinates                           string
}

func (l Location) attributes() Attributes {
	a := Attributes{
		CountryCode:                           l.countryCode,
		CityCode:                              l.cityCode,
		FullName:                              l.fullName,
		FullNameWithoutDiacritics:             l.fullNameWithoutDiacritics,
		Subdivision:                           l.subdivision,
		Functions:                             l.Functions(),
		Status:                                string(l.status),
		Date:                                  l.date,
		Coordinates:                           l.coordinates,
		AlternativeFullNames:                  l.AlternativeFullNames(),
		AlternativeFullNamesWithoutDiacritics: l.AlternativeFullNamesWithoutDiacritics(),
	}
	if l.hasIATACode {
		iata := l.iataCode
		a.IATACode = &iata
	}
	return a
}

func toGob(l Location) locationGob {
	a := l.attributes()
	classifier := make([]byte, len(a.Functions))
	for i, f := range a.Functions {
		classifier[i] = byte(f)
	}
	g := locationGob{
		CountryCode:                           a.CountryCode,
		CityCode:                              a.CityCode,
		FullName:                              a.FullName,
		FullNameWithoutDiacritics:             a.FullNameWithoutDiacritics,
		AlternativeFullNames:                  a.AlternativeFullNames,
		AlternativeFullNamesWithoutDiacritics: a.AlternativeFullNamesWithoutDiacritics,
		Subdivision:                           a.Subdivision,
		FunctionClassifier:                    string(classifier),
		Status:                                a.Status,
		Date:                                  a.Date,
		Coordinates:                           a.Coordinates,
	}
	if a.IATACode != nil {
		g.IATACode, g.HasIATACode = *a.IATACode, true
	}
	return g
}

func fromGob(g locationGob) Location {
	var iata *string
	if g.HasIATACode {
		iata = &g.IATACode
	}
	return NewLocation(Attributes{
		CountryCode:                           g.CountryCode,
		CityCode:                              g.CityCode,
		FullName:                              g.FullName,
		FullNameWithoutDiacritics:             g.FullNameWithoutDiacritics,
		Subdivision:                           g.Subdivision,
		FunctionClassifier:                    g.FunctionClassifier,
		Status:                                g.Status,
		Date:                                  g.Date,
		IATACode:                              iata,
		Coordinates:                           g.Coordinates,
		AlternativeFullNames:                  g.AlternativeFullNames,
		AlternativeFullNamesWithoutDiacritics: g.AlternativeFullNamesWithoutDiacritics,
	})
}

// Store writes the Index to cacheDir, keeping collection order.
func (x *Index) Store(cacheDir string) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	gobLocations := make([]locationGob, len(x.locations))
	for i, l := range x.locations {
		gobLocations[i] = toGob(l)
	}
	if err := writeGob(filepath.Join(cacheDir, locationsCacheFile), gobLocations); err != nil {
		return err
	}
	return writeGob(filepath.Join(cacheDir, subdivisionsCacheFile), x.subdivisions)
}

func writeGob(path string, v any) error {
	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads the Index written by Store from the configured cache
// directory. It is meant to be called once at startup; the returned Index
// is owned by the caller.
func Load(opts ...Option) (*Index, error) {
	return load(newConfig(opts).CacheDir)
}

func load(cacheDir string) (*Index, error) {
	var gobLocations []locationGob
	if err := readGob(filepath.Join(cacheDir, locationsCacheFile), &gobLocations); err != nil {
		return nil, err
	}
	if len(gobLocations) == 0 {
		return nil, ErrEmptyCache
	}

	// Subdivisions are optional: older caches and builds without a
	// subdivision list have none.
	var subdivisions []Subdivision
	if err := readGob(filepath.Join(cacheDir, subdivisionsCacheFile), &subdivisions); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	locations := make([]Location, len(gobLocations))
	for i, g := range gobLocations {
		locations[i] = fromGob(g)
	}
	return newIndex(locations, subdivisions), nil
}

func readGob(path string, v any) error {
	r, cleanup, err := openOptionallyBzippedFile(path)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := gob.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}

// openOptionallyBzippedFile prefers "<file>.bz2" and falls back to the
// uncompressed file.
func openOptionallyBzippedFile(file string) (io.Reader, func() error, error) {
	fh, err := os.Open(file + ".bz2")
	if err != nil {
		fh, err = os.Open(file)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", file, err)
		}
		return fh, fh.Close, nil
	}
	return bzip2.NewReader(fh), fh.Close, nil
}
