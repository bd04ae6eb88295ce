// Package search exposes a UN/LOCODE Index over HTTP.
package search

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/pariz/gountries"

	"github.com/andreiashu/locode"
)

var (
	// ErrInvalidArgument is returned when a request is malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when a subdivision or country is unknown.
	ErrNotFound = errors.New("not found")
)

// Country describes a country code with the number of locations it has.
type Country struct {
	Code         string `json:"country_code"`
	Name         string `json:"name"`
	OfficialName string `json:"official_name,omitempty"`
	Region       string `json:"region,omitempty"`
	Subregion    string `json:"subregion,omitempty"`
	Locations    int    `json:"locations"`
}

// Service is the interface that provides location search.
type Service interface {
	// FindByLocode returns locations whose locode starts with prefix.
	FindByLocode(prefix string) []locode.Location

	// FindByName returns locations with a name starting with prefix.
	FindByName(prefix string) []locode.Location

	// FindByNameFuzzy returns locations with a name within maxDist edits.
	FindByNameFuzzy(name string, maxDist int) []locode.Location

	// FindByCountryAndFunction returns a country's locations offering fn.
	FindByCountryAndFunction(countryCode string, fn locode.Function, limit ...int) []locode.Location

	// FindByFunction returns locations offering fn.
	FindByFunction(fn locode.Function, limit ...int) []locode.Location

	// Nearby returns the nearest location when radiusKm is 0, otherwise
	// every location within radiusKm, nearest first.
	Nearby(lat, lng, radiusKm float64, limit ...int) []locode.Location

	// Subdivision looks up a subdivision of a country.
	Subdivision(countryCode, code string) (locode.Subdivision, error)

	// Country describes a country.
	Country(countryCode string) (Country, error)

	// Reload replaces the served Index with a freshly loaded one.
	Reload() error
}

// Loader produces a new Index, typically locode.Load with the configured
// cache directory.
type Loader func() (*locode.Index, error)

type service struct {
	index     atomic.Pointer[locode.Index]
	load      Loader
	countries *gountries.Query
}

// NewService creates a search service serving ix. load is used by Reload
// and may be nil.
func NewService(ix *locode.Index, load Loader) Service {
	s := &service{
		load:      load,
		countries: gountries.New(),
	}
	s.index.Store(ix)
	return s
}

func (s *service) FindByLocode(prefix string) []locode.Location {
	return s.index.Load().FindByLocode(prefix)
}

func (s *service) FindByName(prefix string) []locode.Location {
	return s.index.Load().FindByName(prefix)
}

func (s *service) FindByNameFuzzy(name string, maxDist int) []locode.Location {
	return s.index.Load().FindByNameFuzzy(name, maxDist)
}

func (s *service) FindByCountryAndFunction(countryCode string, fn locode.Function, limit ...int) []locode.Location {
	return s.index.Load().FindByCountryAndFunction(countryCode, fn, limit...)
}

func (s *service) FindByFunction(fn locode.Function, limit ...int) []locode.Location {
	return s.index.Load().ByFunction(fn, limit...)
}

func (s *service) Nearby(lat, lng, radiusKm float64, limit ...int) []locode.Location {
	ix := s.index.Load()
	if radiusKm > 0 {
		return ix.Within(lat, lng, radiusKm, limit...)
	}
	if len(limit) > 0 && limit[0] <= 0 {
		return []locode.Location{}
	}
	l, ok := ix.Nearest(lat, lng)
	if !ok {
		return []locode.Location{}
	}
	return []locode.Location{l}
}

// Subdivision prefers the loaded subdivision list and falls back to the
// ISO 3166-2 data bundled with gountries.
func (s *service) Subdivision(countryCode, code string) (locode.Subdivision, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	code = strings.ToUpper(strings.TrimSpace(code))
	if countryCode == "" || code == "" {
		return locode.Subdivision{}, ErrInvalidArgument
	}

	if sd, ok := s.index.Load().Subdivision(countryCode, code); ok {
		return sd, nil
	}

	c, err := s.countries.FindCountryByAlpha(countryCode)
	if err != nil {
		return locode.Subdivision{}, fmt.Errorf("country %s: %w", countryCode, ErrNotFound)
	}
	sd, err := c.FindSubdivisionByCode(code)
	if err != nil {
		return locode.Subdivision{}, fmt.Errorf("subdivision %s-%s: %w", countryCode, code, ErrNotFound)
	}
	return locode.Subdivision{CountryCode: countryCode, Code: code, Name: sd.Name}, nil
}

func (s *service) Country(countryCode string) (Country, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if len(countryCode) != 2 {
		return Country{}, ErrInvalidArgument
	}

	out := Country{
		Code:      countryCode,
		Locations: len(s.index.Load().FindByLocode(countryCode)),
	}
	c, err := s.countries.FindCountryByAlpha(countryCode)
	if err != nil {
		// Codes like XZ (international waters) exist only in the code list.
		if out.Locations == 0 {
			return Country{}, fmt.Errorf("country %s: %w", countryCode, ErrNotFound)
		}
		return out, nil
	}
	out.Name = c.Name.Common
	out.OfficialName = c.Name.Official
	out.Region = c.Region
	out.Subregion = c.SubRegion
	return out, nil
}

func (s *service) Reload() error {
	if s.load == nil {
		return errors.New("reload not configured")
	}
	ix, err := s.load()
	if err != nil {
		return fmt.Errorf("reloading index: %w", err)
	}
	s.index.Store(ix)
	return nil
}
