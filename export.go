package locode

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// locationRecord is the exported form of a Location.
type locationRecord struct {
	Locode                                string     `json:"locode" yaml:"locode"`
	CountryCode                           string     `json:"country_code" yaml:"country_code"`
	CityCode                              string     `json:"city_code" yaml:"city_code"`
	FullName                              string     `json:"full_name" yaml:"full_name"`
	FullNameWithoutDiacritics             string     `json:"full_name_without_diacritics" yaml:"full_name_without_diacritics"`
	AlternativeFullNames                  []string   `json:"alternative_full_names" yaml:"alternative_full_names"`
	AlternativeFullNamesWithoutDiacritics []string   `json:"alternative_full_names_without_diacritics" yaml:"alternative_full_names_without_diacritics"`
	Subdivision                           string     `json:"subdivision" yaml:"subdivision"`
	FunctionClassifier                    []Function `json:"function_classifier" yaml:"function_classifier"`
	Status                                Status     `json:"status" yaml:"status"`
	Date                                  string     `json:"date" yaml:"date"`
	IATACode                              *string    `json:"iata_code,omitempty" yaml:"iata_code,omitempty"`
	Coordinates                           string     `json:"coordinates" yaml:"coordinates"`
}

func (l Location) record() locationRecord {
	a := l.attributes()
	return locationRecord{
		Locode:                                l.Locode(),
		CountryCode:                           a.CountryCode,
		CityCode:                              a.CityCode,
		FullName:                              a.FullName,
		FullNameWithoutDiacritics:             a.FullNameWithoutDiacritics,
		AlternativeFullNames:                  a.AlternativeFullNames,
		AlternativeFullNamesWithoutDiacritics: a.AlternativeFullNamesWithoutDiacritics,
		Subdivision:                           a.Subdivision,
		FunctionClassifier:                    a.Functions,
		Status:                                l.status,
		Date:                                  a.Date,
		IATACode:                              a.IATACode,
		Coordinates:                           a.Coordinates,
	}
}

// The locode key is derived and ignored on input.
func (r locationRecord) location() Location {
	fns := r.FunctionClassifier
	if fns == nil {
		fns = []Function{}
	}
	return NewLocation(Attributes{
		CountryCode:                           r.CountryCode,
		CityCode:                              r.CityCode,
		FullName:                              r.FullName,
		FullNameWithoutDiacritics:             r.FullNameWithoutDiacritics,
		Subdivision:                           r.Subdivision,
		Functions:                             fns,
		Status:                                string(r.Status),
		Date:                                  r.Date,
		IATACode:                              r.IATACode,
		Coordinates:                           r.Coordinates,
		AlternativeFullNames:                  r.AlternativeFullNames,
		AlternativeFullNamesWithoutDiacritics: r.AlternativeFullNamesWithoutDiacritics,
	})
}

func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.record())
}

func (l *Location) UnmarshalJSON(b []byte) error {
	var r locationRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*l = r.location()
	return nil
}

func (l Location) MarshalYAML() (any, error) {
	return l.record(), nil
}

func (l *Location) UnmarshalYAML(value *yaml.Node) error {
	var r locationRecord
	if err := value.Decode(&r); err != nil {
		return err
	}
	*l = r.location()
	return nil
}

// WriteJSON writes locations as an indented JSON array.
func WriteJSON(w io.Writer, locations []Location) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(locations); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteYAML writes locations as a YAML sequence.
func WriteYAML(w io.Writer, locations []Location) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(locations); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
