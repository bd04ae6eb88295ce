package locode

// Row is one record of a UN/LOCODE code list file, as produced by the CSV
// decoder. Columns are positional:
//
//	0  change indicator ("+", "#", "X", "|", "=")
//	1  country code
//	2  city code
//	3  name
//	4  name without diacritics
//	5  subdivision
//	6  function classifier
//	7  status
//	8  date
//	9  IATA code
//	10 coordinates
//	11 remarks (ignored)
type Row []string

// Column indexes of a Row.
const (
	colChange = iota
	colCountry
	colCity
	colName
	colNameWithoutDiacritics
	colSubdivision
	colFunction
	colStatus
	colDate
	colIATA
	colCoordinates
	colRemarks
)

// aliasMarker is the change indicator of reference rows.
const aliasMarker = "="

// RowKind is the classification of a Row.
type RowKind int

const (
	// LocationRow describes a location.
	LocationRow RowKind = iota
	// CountryHeader groups a country's locations, e.g. `,"BE",,".BELGIUM",,,,,,,,`.
	CountryHeader
	// ReferenceAlias supplies an alternate name for an existing location,
	// e.g. `"=","SE",,"Gothenburg = Göteborg","Gothenburg = Goteborg",...`.
	ReferenceAlias
)

func (k RowKind) String() string {
	switch k {
	case CountryHeader:
		return "country_header"
	case ReferenceAlias:
		return "reference_alias"
	default:
		return "location"
	}
}

// Classify decides what a row describes. A country header has only the
// country code and name columns set; a reference alias is marked with "="
// in the change indicator column; every other row is a location.
func Classify(row Row) RowKind {
	if row.present(colCountry) && row.present(colName) && row.absentExcept(colCountry, colName) {
		return CountryHeader
	}
	if row.present(colChange) && trim(row[colChange]) == aliasMarker {
		return ReferenceAlias
	}
	return LocationRow
}

// col returns column i, or "" when the row is too short.
func (r Row) col(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// present reports whether column i exists and is non-blank.
func (r Row) present(i int) bool {
	return trim(r.col(i)) != ""
}

// absentExcept reports whether every column up to and including the
// remarks column is blank, apart from the given ones.
func (r Row) absentExcept(keep ...int) bool {
next:
	for i := colChange; i <= colRemarks; i++ {
		for _, k := range keep {
			if i == k {
				continue next
			}
		}
		if r.present(i) {
			return false
		}
	}
	return true
}

// attributes maps a location row's columns to Attributes.
func (r Row) attributes() Attributes {
	a := Attributes{
		CountryCode:               r.col(colCountry),
		CityCode:                  r.col(colCity),
		FullName:                  r.col(colName),
		FullNameWithoutDiacritics: r.col(colNameWithoutDiacritics),
		Subdivision:               r.col(colSubdivision),
		FunctionClassifier:        r.col(colFunction),
		Status:                    r.col(colStatus),
		Date:                      r.col(colDate),
		Coordinates:               r.col(colCoordinates),
	}
	if colIATA < len(r) {
		iata := r[colIATA]
		a.IATACode = &iata
	}
	return a
}
