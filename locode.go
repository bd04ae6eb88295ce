// Package locode ingests the UNECE UN/LOCODE code list and answers search
// queries over it from memory.
//
// The code list is converted once, offline, by Build (or the update-cache
// command): every CSV file of a source directory is classified row by row,
// locations are created from location rows, and the alternate names of
// reference rows ("=" rows) are attached to the locations they refer to.
// The finished collection is written to a gob cache with Store. Services
// load that cache at startup with Load and query the returned Index.
//
//	ix, err := locode.Load(locode.WithCacheDir("/var/lib/locode"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, l := range ix.FindByLocode("de ham") {
//	    fmt.Println(l.Locode(), l.FullName())
//	}
package locode

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/golang/geo/s2"
)

// Encoding is the character encoding of the source CSV files.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1" // ISO 8859-1, as published by UNECE
)

// Config contains configuration options for building and loading an Index.
type Config struct {
	SourceDir       string       // Directory of code list CSV files (default: "./locode-data")
	SubdivisionFile string       // Optional subdivision code list CSV
	CacheDir        string       // Directory for cache files (default: "./locode-cache")
	Encoding        Encoding     // Source file encoding (default: latin1)
	Logger          *slog.Logger // Build progress; nil discards
}

// Option is a functional option for configuring Build, Load and Open.
type Option func(*Config)

// WithSourceDir sets the directory of code list CSV files.
func WithSourceDir(dir string) Option {
	return func(c *Config) {
		c.SourceDir = dir
	}
}

// WithSubdivisionFile sets the subdivision code list CSV.
func WithSubdivisionFile(path string) Option {
	return func(c *Config) {
		c.SubdivisionFile = path
	}
}

// WithCacheDir sets the directory for cache files.
func WithCacheDir(dir string) Option {
	return func(c *Config) {
		c.CacheDir = dir
	}
}

// WithEncoding sets the character encoding of the source files.
func WithEncoding(enc Encoding) Option {
	return func(c *Config) {
		c.Encoding = enc
	}
}

// WithLogger sets the logger used while building.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func defaultConfig() *Config {
	return &Config{
		SourceDir: "./locode-data",
		CacheDir:  "./locode-cache",
		Encoding:  EncodingLatin1,
	}
}

func newConfig(opts []Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger
	}
	return cfg
}

// Index is an immutable, ordered collection of locations with search
// indexes. Safe for concurrent use.
type Index struct {
	locations    []Location
	names        [][]string                        // lower-cased name candidates, parallel to locations
	cellIndex    map[s2.CellID][]int               // S2 cells of locations with coordinates
	subdivisions []Subdivision                     // in source order
	divisions    map[string]map[string]Subdivision // country -> code -> subdivision
}

// NewIndex builds an Index over a copy of locations, keeping their order.
func NewIndex(locations []Location) *Index {
	return newIndex(locations, nil)
}

func newIndex(locations []Location, subdivisions []Subdivision) *Index {
	x := &Index{
		locations: make([]Location, len(locations)),
		names:     make([][]string, len(locations)),
	}
	copy(x.locations, locations)
	for i := range x.locations {
		x.names[i] = x.locations[i].nameCandidates()
	}
	x.buildCellIndex()
	x.setSubdivisions(subdivisions)
	return x
}

// Len returns the number of locations.
func (x *Index) Len() int {
	return len(x.locations)
}

// All returns every location in collection order.
func (x *Index) All() []Location {
	out := make([]Location, len(x.locations))
	copy(out, x.locations)
	return out
}

// resultLimit resolves an optional limit argument. The default is the
// collection size; negative limits select nothing.
func (x *Index) resultLimit(limit []int) int {
	if len(limit) == 0 {
		return len(x.locations)
	}
	if limit[0] < 0 {
		return 0
	}
	return limit[0]
}

// filter returns up to limit locations for which keep is true, in order.
func (x *Index) filter(limit int, keep func(i int) bool) []Location {
	out := []Location{}
	if limit <= 0 {
		return out
	}
	for i := range x.locations {
		if !keep(i) {
			continue
		}
		out = append(out, x.locations[i])
		if len(out) == limit {
			break
		}
	}
	return out
}

// ByFunction returns locations offering fn, optionally capped at limit.
func (x *Index) ByFunction(fn Function, limit ...int) []Location {
	return x.filter(x.resultLimit(limit), func(i int) bool {
		return x.locations[i].HasFunction(fn)
	})
}

func (x *Index) Seaports(limit ...int) []Location      { return x.ByFunction(Seaport, limit...) }
func (x *Index) RailTerminals(limit ...int) []Location { return x.ByFunction(RailTerminal, limit...) }
func (x *Index) RoadTerminals(limit ...int) []Location { return x.ByFunction(RoadTerminal, limit...) }
func (x *Index) Airports(limit ...int) []Location      { return x.ByFunction(Airport, limit...) }
func (x *Index) PostalExchangeOffices(limit ...int) []Location {
	return x.ByFunction(PostalExchangeOffice, limit...)
}
func (x *Index) InlandClearanceDepots(limit ...int) []Location {
	return x.ByFunction(InlandClearanceDepot, limit...)
}

// FixedTransportFunctions returns locations with fixed transport functions,
// currently oil platforms.
func (x *Index) FixedTransportFunctions(limit ...int) []Location {
	return x.ByFunction(FixedTransportFunctions, limit...)
}
func (x *Index) BorderCrossings(limit ...int) []Location {
	return x.ByFunction(BorderCrossing, limit...)
}

// FindByLocode returns the locations whose locode starts with prefix, so a
// country code alone or a whole locode both work:
//
//	ix.FindByLocode("US")     // every US location
//	ix.FindByLocode("de ham") // [DE HAM]
//	ix.FindByLocode("foobar") // []
//
// The prefix is trimmed and upper-cased. The empty prefix matches everything.
func (x *Index) FindByLocode(prefix string) []Location {
	prefix = normalizeCode(prefix)
	return x.filter(len(x.locations), func(i int) bool {
		return strings.HasPrefix(x.locations[i].Locode(), prefix)
	})
}

// FindByName returns the locations where any of the full name, the name
// without diacritics or an alternative name starts with prefix, compared
// case-insensitively. Names are not unique, hence the slice.
//
//	ix.FindByName("Göteborg")   // [SE GOT]
//	ix.FindByName("Gothenburg") // [SE GOT]
func (x *Index) FindByName(prefix string) []Location {
	prefix = toLower(trim(prefix))
	return x.filter(len(x.locations), func(i int) bool {
		for _, name := range x.names[i] {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	})
}

// countryCodeRegex matches an ISO 3166 alpha-2 code in canonical form.
var countryCodeRegex = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`^[A-Z]{2}$`)
})

// FindByCountryAndFunction returns locations of a country offering fn,
// optionally capped at limit. countryCode must be two upper-case letters
// and fn a valid tag; anything else yields no results.
//
//	ix.FindByCountryAndFunction("BE", locode.Seaport) // [BE ANR, ...]
func (x *Index) FindByCountryAndFunction(countryCode string, fn Function, limit ...int) []Location {
	if !countryCodeRegex().MatchString(countryCode) || !fn.Valid() {
		return []Location{}
	}
	return x.filter(x.resultLimit(limit), func(i int) bool {
		return x.locations[i].countryCode == countryCode && x.locations[i].HasFunction(fn)
	})
}

// maxFuzzyDistance caps the edit distance of FindByNameFuzzy.
const maxFuzzyDistance = 3

// maxNameQueryLen limits query length for Levenshtein comparisons. 256 runes
// covers the longest location names.
const maxNameQueryLen = 256

// FindByNameFuzzy returns locations with a name within maxDist edits of
// name, compared case-insensitively. Results are ordered by their best
// distance, then collection order. maxDist 0 means exact case-insensitive
// match; values above 3 are capped.
func (x *Index) FindByNameFuzzy(name string, maxDist int) []Location {
	name = trim(name)
	if name == "" || maxDist < 0 {
		return []Location{}
	}
	if runes := []rune(name); len(runes) > maxNameQueryLen {
		name = string(runes[:maxNameQueryLen])
	}
	if maxDist > maxFuzzyDistance {
		maxDist = maxFuzzyDistance
	}

	query := toLower(name)
	queryLen := utf8.RuneCountInString(query)

	type match struct {
		idx  int
		dist int
	}
	var matches []match
	for i, names := range x.names {
		best := -1
		for _, n := range names {
			if d := utf8.RuneCountInString(n) - queryLen; d > maxDist || -d > maxDist {
				continue
			}
			if dist := fuzzyDistance(query, n, maxDist); dist >= 0 && (best < 0 || dist < best) {
				best = dist
			}
		}
		if best >= 0 {
			matches = append(matches, match{idx: i, dist: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	out := make([]Location, len(matches))
	for i, m := range matches {
		out[i] = x.locations[m.idx]
	}
	return out
}

// fuzzyDistance returns the edit distance between two lower-cased names, or
// -1 when it exceeds maxDist.
func fuzzyDistance(query, candidate string, maxDist int) int {
	if maxDist == 0 {
		if query == candidate {
			return 0
		}
		return -1
	}
	dist := levenshtein.ComputeDistance(query, candidate)
	if dist > maxDist {
		return -1
	}
	return dist
}
