package locode

import (
	"fmt"
	"slices"
)

// Function is a UN/LOCODE function classifier tag: '1' through '7' or 'B'.
type Function byte

// Function classifier tags as published by UNECE.
const (
	Seaport                 Function = '1' // any port with transport via water
	RailTerminal            Function = '2'
	RoadTerminal            Function = '3'
	Airport                 Function = '4'
	PostalExchangeOffice    Function = '5'
	InlandClearanceDepot    Function = '6' // ICD or "dry port"
	FixedTransportFunctions Function = '7' // e.g. oil platform
	BorderCrossing          Function = 'B'
)

// functionNames links the readable name of each function to its tag.
// Order matches the UNECE code list.
var functionNames = []struct {
	name string
	fn   Function
}{
	{"seaport", Seaport},
	{"rail_terminal", RailTerminal},
	{"road_terminal", RoadTerminal},
	{"airport", Airport},
	{"postal_exchange_office", PostalExchangeOffice},
	{"inland_clearance_depot", InlandClearanceDepot},
	{"fixed_transport_functions", FixedTransportFunctions},
	{"border_crossing", BorderCrossing},
}

// Valid reports whether f is one of the eight published tags.
// Lower-case 'b' is not a valid tag.
func (f Function) Valid() bool {
	return (f >= '1' && f <= '7') || f == BorderCrossing
}

// Name returns the readable name of the function, e.g. "seaport".
func (f Function) Name() string {
	for _, fn := range functionNames {
		if fn.fn == f {
			return fn.name
		}
	}
	return ""
}

func (f Function) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Function(%d)", byte(f))
	}
	return string(rune(f))
}

// MarshalText encodes the tag as "1".."7" or "B".
func (f Function) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid function classifier %d", byte(f))
	}
	return []byte{byte(f)}, nil
}

// UnmarshalText decodes a tag written by MarshalText.
func (f *Function) UnmarshalText(b []byte) error {
	fn, ok := ParseFunction(string(b))
	if !ok {
		return fmt.Errorf("invalid function classifier %q", b)
	}
	*f = fn
	return nil
}

// ParseFunction parses a single tag. It is case-sensitive: "b" is rejected.
func ParseFunction(s string) (Function, bool) {
	if len(s) != 1 {
		return 0, false
	}
	f := Function(s[0])
	return f, f.Valid()
}

// FunctionByName looks a tag up by its readable name ("seaport", "airport", ...).
func FunctionByName(name string) (Function, bool) {
	name = toLower(name)
	for _, fn := range functionNames {
		if fn.name == name {
			return fn.fn, true
		}
	}
	return 0, false
}

// Status is the 2-character entry status code of a location.
type Status string

// Documented status codes. Other values are stored as-is.
const (
	StatusApprovedGovernment   Status = "AA" // competent national government agency
	StatusApprovedCustoms      Status = "AC"
	StatusApprovedFacilitation Status = "AF" // national facilitation body
	StatusAdoptedInternational Status = "AI" // IATA or ECLAC
	StatusApprovedMaintenance  Status = "AM" // UN/LOCODE Maintenance Agency
	StatusApprovedStandards    Status = "AS" // national standardisation body
	StatusApprovedUnverified   Status = "AQ" // functions not verified
	StatusRecognised           Status = "RL"
	StatusRequestNational      Status = "RN"
	StatusRequestUnderReview   Status = "RQ"
	StatusRequestRejected      Status = "RR"
	StatusNotVerified          Status = "QQ"
	StatusUserRequest          Status = "UR"
	StatusScheduledForRemoval  Status = "XX"
)

// Location is one UN/LOCODE transport point. The zero value is an invalid
// location. Locations are immutable: accessors return copies of any
// slice-valued attribute.
type Location struct {
	countryCode                           string
	cityCode                              string
	fullName                              string
	fullNameWithoutDiacritics             string
	alternativeFullNames                  []string
	alternativeFullNamesWithoutDiacritics []string
	subdivision                           string
	functions                             []Function
	status                                Status
	date                                  string
	iataCode                              string
	hasIATACode                           bool
	coordinates                           string
}

// Attributes configures NewLocation. Every field is optional; values are
// normalized the same way as raw source columns.
type Attributes struct {
	CountryCode               string
	CityCode                  string
	FullName                  string
	FullNameWithoutDiacritics string
	Subdivision               string

	// FunctionClassifier is the raw classifier text, e.g. "1234----".
	// Ignored when Functions is non-nil.
	FunctionClassifier string
	Functions          []Function

	Status      string
	Date        string
	IATACode    *string // nil means absent; "" is a valid, present code
	Coordinates string

	AlternativeFullNames                  []string
	AlternativeFullNamesWithoutDiacritics []string
}

// NewLocation builds a Location from attributes.
//
//	loc := locode.NewLocation(locode.Attributes{
//	    CountryCode:        "US",
//	    CityCode:           "NYC",
//	    FullName:           "New York",
//	    FunctionClassifier: "12345---",
//	    Status:             "AI",
//	})
//	loc.Locode() // "US NYC"
func NewLocation(a Attributes) Location {
	l := Location{
		countryCode:               normalizeCode(a.CountryCode),
		cityCode:                  normalizeCode(a.CityCode),
		fullName:                  trim(a.FullName),
		fullNameWithoutDiacritics: trim(a.FullNameWithoutDiacritics),
		subdivision:               trim(a.Subdivision),
		status:                    normalizeStatus(a.Status),
		date:                      trim(a.Date),
		coordinates:               trim(a.Coordinates),
	}
	if a.Functions != nil {
		l.functions = validFunctions(a.Functions)
	} else {
		l.functions = parseFunctionClassifier(a.FunctionClassifier)
	}
	if a.IATACode != nil {
		l.iataCode = trim(*a.IATACode)
		l.hasIATACode = true
	}
	l.alternativeFullNames = appendNames(nil, a.AlternativeFullNames...)
	l.alternativeFullNamesWithoutDiacritics = appendNames(nil, a.AlternativeFullNamesWithoutDiacritics...)
	return l
}

// Locode returns the UN/LOCODE, e.g. "US NYC". When the city code is
// missing only the country code is returned.
func (l Location) Locode() string {
	return trim(l.countryCode + " " + l.cityCode)
}

// CountryCode returns the ISO 3166 alpha-2 country code or "".
func (l Location) CountryCode() string { return l.countryCode }

// CityCode returns the three letter place code or "".
func (l Location) CityCode() string { return l.cityCode }

// FullName returns the name of the location, e.g. "Göteborg".
func (l Location) FullName() string { return l.fullName }

// FullNameWithoutDiacritics returns the name in base Latin characters, e.g. "Goteborg".
func (l Location) FullNameWithoutDiacritics() string { return l.fullNameWithoutDiacritics }

// AlternativeFullNames returns alternate spellings attached by reference rows.
func (l Location) AlternativeFullNames() []string {
	return cloneNames(l.alternativeFullNames)
}

// AlternativeFullNamesWithoutDiacritics returns alternate spellings in base Latin characters.
func (l Location) AlternativeFullNamesWithoutDiacritics() []string {
	return cloneNames(l.alternativeFullNamesWithoutDiacritics)
}

// Subdivision returns the ISO 3166-2 subdivision suffix (the part after the
// hyphen), e.g. "NY".
func (l Location) Subdivision() string { return l.subdivision }

// Functions returns the function classifier tags in source order.
func (l Location) Functions() []Function {
	if l.functions == nil {
		return []Function{}
	}
	return slices.Clone(l.functions)
}

// HasFunction reports whether the location offers the given function.
func (l Location) HasFunction(f Function) bool {
	return slices.Contains(l.functions, f)
}

// Status returns the entry status code or "".
func (l Location) Status() Status { return l.status }

// Date returns the MMYY-like date the entry was added or updated, e.g. "0401".
func (l Location) Date() string { return l.date }

// IATACode returns the IATA code and whether one was given at all. A present
// but empty code is meaningful: it is distinct from an absent one.
func (l Location) IATACode() (string, bool) { return l.iataCode, l.hasIATACode }

// Coordinates returns the raw coordinates, e.g. "4042N 07400W", or "".
func (l Location) Coordinates() string { return l.coordinates }

// Valid reports whether the location has a 2-letter country code and a
// 3-letter city code.
func (l Location) Valid() bool {
	return len(l.countryCode) == 2 && len(l.cityCode) == 3
}

func (l Location) String() string {
	return fmt.Sprintf("<locode.Location: '%s'>", l.Locode())
}

func (l Location) IsSeaport() bool                 { return l.HasFunction(Seaport) }
func (l Location) IsRailTerminal() bool            { return l.HasFunction(RailTerminal) }
func (l Location) IsRoadTerminal() bool            { return l.HasFunction(RoadTerminal) }
func (l Location) IsAirport() bool                 { return l.HasFunction(Airport) }
func (l Location) IsPostalExchangeOffice() bool    { return l.HasFunction(PostalExchangeOffice) }
func (l Location) IsInlandClearanceDepot() bool    { return l.HasFunction(InlandClearanceDepot) }
func (l Location) IsFixedTransportFunctions() bool { return l.HasFunction(FixedTransportFunctions) }
func (l Location) IsBorderCrossing() bool          { return l.HasFunction(BorderCrossing) }

// nameCandidates returns the lower-cased, non-empty names a name search
// matches against.
func (l Location) nameCandidates() []string {
	names := make([]string, 0, 2+len(l.alternativeFullNames)+len(l.alternativeFullNamesWithoutDiacritics))
	for _, n := range [2]string{l.fullName, l.fullNameWithoutDiacritics} {
		if n != "" {
			names = append(names, toLower(n))
		}
	}
	for _, n := range l.alternativeFullNames {
		names = append(names, toLower(n))
	}
	for _, n := range l.alternativeFullNamesWithoutDiacritics {
		names = append(names, toLower(n))
	}
	return names
}

func cloneNames(names []string) []string {
	if names == nil {
		return []string{}
	}
	return slices.Clone(names)
}
