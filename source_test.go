package locode

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRowsVariableColumns(t *testing.T) {
	in := `,"BE",,".BELGIUM"
,"BE","ANR","Antwerpen","Antwerpen","VAN","12345---","AI","0401",,"5113N 00425E","remark"
`
	rows, err := readRows(strings.NewReader(in), EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 4)
	assert.Len(t, rows[1], 12)
	assert.Equal(t, "Antwerpen", rows[1][colName])
}

func TestReadRowsStripsBOM(t *testing.T) {
	rows, err := readRows(strings.NewReader("\ufeff\"=\",\"SE\""), EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ReferenceAlias, Classify(rows[0]))
}

func TestReadRowsLatin1(t *testing.T) {
	in := ",\"SE\",\"GOT\",\"G\xf6teborg\",\"Goteborg\"\n"
	rows, err := readRows(strings.NewReader(in), EncodingLatin1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Göteborg", rows[0][colName])
}

func TestReadRowsUnsupportedEncoding(t *testing.T) {
	_, err := readRows(strings.NewReader(""), Encoding("ebcdic"))
	assert.ErrorContains(t, err, "unsupported source encoding")
}

func TestReadSourceDirLatin1(t *testing.T) {
	rows, files, err := readSourceDir("testdata/latin1", EncodingLatin1, discardLogger)
	require.NoError(t, err)
	assert.Equal(t, 1, files, "upper-case extensions are read")
	require.Len(t, rows, 4)

	locations, stats := Reconcile(rows)
	require.Len(t, locations, 2)
	assert.Equal(t, "Göteborg", locations[0].FullName())
	assert.Equal(t, []string{"Gothenburg"}, locations[0].AlternativeFullNames())
	assert.Equal(t, "Zürich", locations[1].FullName())
	assert.Equal(t, 1, stats.MatchedAliases)
}

func TestReadSourceDirFileOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(`,"NL","RTM","Rotterdam"`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(`,"BE","ANR","Antwerpen"`+"\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.csv"), 0o755))

	rows, files, err := readSourceDir(dir, EncodingUTF8, discardLogger)
	require.NoError(t, err)
	assert.Equal(t, 2, files)
	require.Len(t, rows, 2)
	assert.Equal(t, "ANR", rows[0][colCity])
	assert.Equal(t, "RTM", rows[1][colCity])
}

func TestReadSourceDirNoFiles(t *testing.T) {
	_, _, err := readSourceDir("testdata/empty", EncodingUTF8, discardLogger)
	assert.True(t, errors.Is(err, ErrNoSourceFiles), "got %v", err)
}

func TestReadSourceDirMissing(t *testing.T) {
	_, _, err := readSourceDir(filepath.Join(t.TempDir(), "missing"), EncodingUTF8, discardLogger)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestReadSubdivisions(t *testing.T) {
	in := `"US","NY","New York","State"
"US","CA","California"
"XX"
"usa","ZZ","Bad Country","State"
"US","","No Code","State"
`
	subdivisions, err := readSubdivisions(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Subdivision{
		{CountryCode: "US", Code: "NY", Name: "New York", Type: "State"},
		{CountryCode: "US", Code: "CA", Name: "California"},
	}, subdivisions)
}
