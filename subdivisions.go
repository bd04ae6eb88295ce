package locode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Subdivision is an ISO 3166-2 subdivision (state, province, department)
// from the UNECE subdivision code list.
type Subdivision struct {
	CountryCode string // e.g. "US"
	Code        string // part after the hyphen, e.g. "NY"
	Name        string // e.g. "New York"
	Type        string // e.g. "State"
}

// readSubdivisions parses a subdivision code list.
// Format: "CC","CODE","Name","Type"
func readSubdivisions(r io.Reader) ([]Subdivision, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var out []Subdivision
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(record) < 3 {
			continue
		}

		s := Subdivision{
			CountryCode: normalizeCode(record[0]),
			Code:        normalizeCode(record[1]),
			Name:        trim(record[2]),
		}
		if len(record) > 3 {
			s.Type = trim(record[3])
		}
		if len(s.CountryCode) != 2 || s.Code == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (x *Index) setSubdivisions(subdivisions []Subdivision) {
	x.subdivisions = make([]Subdivision, len(subdivisions))
	copy(x.subdivisions, subdivisions)
	x.divisions = make(map[string]map[string]Subdivision)
	for _, s := range x.subdivisions {
		if x.divisions[s.CountryCode] == nil {
			x.divisions[s.CountryCode] = make(map[string]Subdivision)
		}
		x.divisions[s.CountryCode][s.Code] = s
	}
}

// Subdivisions returns every known subdivision in source order.
func (x *Index) Subdivisions() []Subdivision {
	out := make([]Subdivision, len(x.subdivisions))
	copy(out, x.subdivisions)
	return out
}

// Subdivision looks up a subdivision of a country.
func (x *Index) Subdivision(countryCode, code string) (Subdivision, bool) {
	s, ok := x.divisions[normalizeCode(countryCode)][normalizeCode(code)]
	return s, ok
}

// SubdivisionName returns the name of the subdivision a location lies in,
// or "" when unknown.
func (x *Index) SubdivisionName(l Location) string {
	s, _ := x.Subdivision(l.countryCode, l.subdivision)
	return s.Name
}

// SubdivisionCountry returns the country code if code is a subdivision of
// exactly one country. Ambiguous or unknown codes return "".
//
//	ix.SubdivisionCountry("NSW") // "AU"
func (x *Index) SubdivisionCountry(code string) string {
	code = normalizeCode(code)

	var match string
	for country, divisions := range x.divisions {
		if _, ok := divisions[code]; !ok {
			continue
		}
		if match != "" {
			return ""
		}
		match = country
	}
	return match
}
