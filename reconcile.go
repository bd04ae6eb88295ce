package locode

import (
	"io"
	"log/slog"
	"slices"
	"strings"
)

// BuildStats counts what a build saw. Unmatched aliases are diagnostics,
// never errors.
type BuildStats struct {
	Files            int
	Rows             int
	CountryHeaders   int
	Locations        int
	InvalidLocations int
	Aliases          int
	MatchedAliases   int
	UnmatchedAliases int
}

// locationBuilder is the mutable form of a Location, used only while
// reconciling. finish consumes it; touching it afterwards is a bug.
type locationBuilder struct {
	loc      Location
	finished bool
}

func newLocationBuilder(a Attributes) *locationBuilder {
	return &locationBuilder{loc: NewLocation(a)}
}

func (b *locationBuilder) addAlternativeNames(name, nameWithoutDiacritics string) {
	if b.finished {
		panic("locode: alternative names added after reconciliation completed")
	}
	b.loc.alternativeFullNames = appendNames(b.loc.alternativeFullNames, name)
	b.loc.alternativeFullNamesWithoutDiacritics = appendNames(b.loc.alternativeFullNamesWithoutDiacritics, nameWithoutDiacritics)
}

func (b *locationBuilder) finish() Location {
	if b.finished {
		panic("locode: location finished twice")
	}
	b.finished = true
	l := b.loc
	b.loc = Location{}
	l.alternativeFullNames = slices.Clip(l.alternativeFullNames)
	l.alternativeFullNamesWithoutDiacritics = slices.Clip(l.alternativeFullNamesWithoutDiacritics)
	l.functions = slices.Clip(l.functions)
	return l
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Reconcile turns rows into finished locations in two passes. The first
// pass creates a Location for every location row; the second attaches the
// alternate names of reference alias rows to the first location of the same
// country whose full name equals the alias' canonical name. Aliases without
// such a location are dropped.
//
// Rows must be given in file order, then row order. The result is a pure
// function of rows.
func Reconcile(rows []Row) ([]Location, BuildStats) {
	return reconcile(rows, discardLogger)
}

func reconcile(rows []Row, log *slog.Logger) ([]Location, BuildStats) {
	var stats BuildStats
	stats.Rows = len(rows)

	builders := make([]*locationBuilder, 0, len(rows))
	byName := make(map[string]*locationBuilder, len(rows))

	for _, row := range rows {
		switch Classify(row) {
		case CountryHeader:
			stats.CountryHeaders++
		case ReferenceAlias:
			stats.Aliases++
		case LocationRow:
			b := newLocationBuilder(row.attributes())
			if !b.loc.Valid() {
				stats.InvalidLocations++
			}
			builders = append(builders, b)
			key := aliasKey(b.loc.countryCode, b.loc.fullName)
			if _, ok := byName[key]; !ok {
				byName[key] = b
			}
		}
	}

	for _, row := range rows {
		if Classify(row) != ReferenceAlias {
			continue
		}
		name, canonical, ok := splitAlias(row.col(colName))
		if !ok || canonical == "" {
			stats.UnmatchedAliases++
			log.Debug("alias without canonical name", slog.String("value", row.col(colName)))
			continue
		}
		// Only the alias side of the no-diacritics column is used; the
		// lookup key always comes from the name column.
		nameWithoutDiacritics, _, _ := splitAlias(row.col(colNameWithoutDiacritics))

		b, found := byName[aliasKey(normalizeCode(row.col(colCountry)), canonical)]
		if !found {
			stats.UnmatchedAliases++
			log.Debug("alias without matching location",
				slog.String("country", normalizeCode(row.col(colCountry))),
				slog.String("alias", name),
				slog.String("canonical", canonical),
			)
			continue
		}
		b.addAlternativeNames(name, nameWithoutDiacritics)
		stats.MatchedAliases++
	}

	locations := make([]Location, len(builders))
	for i, b := range builders {
		locations[i] = b.finish()
	}
	stats.Locations = len(locations)
	return locations, stats
}

// splitAlias splits "<alias> = <canonical>" at the first "=".
func splitAlias(s string) (alias, canonical string, ok bool) {
	alias, canonical, ok = strings.Cut(s, aliasMarker)
	return trim(alias), trim(canonical), ok
}

func aliasKey(countryCode, fullName string) string {
	return countryCode + "\x00" + fullName
}
