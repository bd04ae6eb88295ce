package locode

import (
	"fmt"
	"log/slog"
)

// KnownLocation is a locode expected in a healthy Index.
type KnownLocation struct {
	Locode   string
	FullName string
}

// ValidationConfig holds the checks Validate runs.
type ValidationConfig struct {
	MinLocations int
	MinCountries int
	Known        []KnownLocation
	Logger       *slog.Logger
}

// DefaultValidationConfig matches a complete UNECE release.
var DefaultValidationConfig = ValidationConfig{
	MinLocations: 100000,
	MinCountries: 240,
	Known: []KnownLocation{
		{"BE ANR", "Antwerpen"},
		{"CN SHA", "Shanghai"},
		{"DE HAM", "Hamburg"},
		{"FR PAR", "Paris"},
		{"GB LON", "London"},
		{"JP TYO", "Tokyo"},
		{"NL RTM", "Rotterdam"},
		{"SE GOT", "Göteborg"},
		{"SG SIN", "Singapore"},
		{"US NYC", "New York"},
	},
}

// Validate sanity-checks an Index, typically a freshly built or loaded
// cache. It returns the first failed check.
func Validate(ix *Index, cfg ValidationConfig) error {
	log := cfg.Logger
	if log == nil {
		log = discardLogger
	}

	if n := ix.Len(); n < cfg.MinLocations {
		return fmt.Errorf("location count too low: got %d, want >= %d", n, cfg.MinLocations)
	}
	log.Info("location count ok", slog.Int("locations", ix.Len()))

	countries := make(map[string]struct{})
	for _, l := range ix.locations {
		if l.countryCode != "" {
			countries[l.countryCode] = struct{}{}
		}
	}
	if len(countries) < cfg.MinCountries {
		return fmt.Errorf("country count too low: got %d, want >= %d", len(countries), cfg.MinCountries)
	}
	log.Info("country count ok", slog.Int("countries", len(countries)))

	for _, want := range cfg.Known {
		got, ok := ix.exact(want.Locode)
		if !ok {
			return fmt.Errorf("locode %q not found", want.Locode)
		}
		if got.FullName() != want.FullName {
			return fmt.Errorf("locode %q full name = %q, want %q", want.Locode, got.FullName(), want.FullName)
		}
	}
	log.Info("known locations ok", slog.Int("checked", len(cfg.Known)))
	return nil
}

// exact returns the first location whose locode equals code.
func (x *Index) exact(code string) (Location, bool) {
	code = normalizeCode(code)
	for _, l := range x.FindByLocode(code) {
		if l.Locode() == code {
			return l, true
		}
	}
	return Location{}, false
}
