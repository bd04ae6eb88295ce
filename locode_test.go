package locode

import (
	"math"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type IndexSuite struct {
	ix    *Index
	stats BuildStats
}

var _ = Suite(&IndexSuite{})

func (s *IndexSuite) SetUpSuite(c *C) {
	var err error
	s.ix, s.stats, err = Build(
		WithSourceDir("testdata/codelist"),
		WithSubdivisionFile("testdata/subdivisions.csv"),
		WithEncoding(EncodingUTF8),
	)
	c.Assert(err, IsNil)
	c.Assert(s.ix, Not(IsNil))
}

func locodes(locations []Location) []string {
	out := []string{}
	for _, l := range locations {
		out = append(out, l.Locode())
	}
	return out
}

func (s *IndexSuite) TestBuildStats(c *C) {
	c.Assert(s.ix.Len(), Equals, 10)
	c.Assert(s.stats, DeepEquals, BuildStats{
		Files:            2,
		Rows:             17,
		CountryHeaders:   3,
		Locations:        10,
		Aliases:          4,
		MatchedAliases:   3,
		UnmatchedAliases: 1,
	})
}

func (s *IndexSuite) TestCollectionOrder(c *C) {
	c.Assert(locodes(s.ix.All()), DeepEquals, []string{
		"BE ANR", "BE BRU", "BE ZEE",
		"NL RTM", "NL AMS", "SE GOT", "DE HAM", "US NYC", "XZ OIL", "FI VAA",
	})
}

func (s *IndexSuite) TestFindByLocode(c *C) {
	c.Assert(s.ix.FindByLocode(""), HasLen, 10)
	c.Assert(locodes(s.ix.FindByLocode("be")), DeepEquals, []string{"BE ANR", "BE BRU", "BE ZEE"})
	c.Assert(locodes(s.ix.FindByLocode(" de ham ")), DeepEquals, []string{"DE HAM"})
	c.Assert(locodes(s.ix.FindByLocode("BE A")), DeepEquals, []string{"BE ANR"})
	c.Assert(s.ix.FindByLocode("foobar"), DeepEquals, []Location{})
}

func (s *IndexSuite) TestFindByName(c *C) {
	c.Assert(locodes(s.ix.FindByName("anv")), DeepEquals, []string{"BE ANR"})
	c.Assert(locodes(s.ix.FindByName("Antwerp")), DeepEquals, []string{"BE ANR"})
	c.Assert(locodes(s.ix.FindByName("gothenburg")), DeepEquals, []string{"SE GOT"})
	c.Assert(locodes(s.ix.FindByName("Göte")), DeepEquals, []string{"SE GOT"})
	c.Assert(locodes(s.ix.FindByName("GOTE")), DeepEquals, []string{"SE GOT"})
	c.Assert(locodes(s.ix.FindByName(" bruxelles ")), DeepEquals, []string{"BE BRU"})
	c.Assert(s.ix.FindByName("zzz"), DeepEquals, []Location{})
	c.Assert(s.ix.FindByName(""), HasLen, 10)

	// Aliases without a matching location are dropped.
	c.Assert(s.ix.FindByName("Nowhere"), DeepEquals, []Location{})
}

func (s *IndexSuite) TestByFunction(c *C) {
	c.Assert(locodes(s.ix.Seaports()), DeepEquals, []string{
		"BE ANR", "BE BRU", "BE ZEE", "NL RTM", "NL AMS", "SE GOT", "DE HAM", "US NYC",
	})
	c.Assert(s.ix.RailTerminals(), HasLen, 7)
	c.Assert(s.ix.RoadTerminals(), HasLen, 9)
	c.Assert(s.ix.Airports(), HasLen, 7)
	c.Assert(locodes(s.ix.PostalExchangeOffices()), DeepEquals, []string{"BE ANR", "NL RTM", "NL AMS", "DE HAM", "US NYC"})
	c.Assert(s.ix.InlandClearanceDepots(), DeepEquals, []Location{})
	c.Assert(locodes(s.ix.FixedTransportFunctions()), DeepEquals, []string{"XZ OIL"})
	c.Assert(locodes(s.ix.BorderCrossings()), DeepEquals, []string{"FI VAA"})
	c.Assert(locodes(s.ix.ByFunction(BorderCrossing)), DeepEquals, []string{"FI VAA"})
	c.Assert(s.ix.ByFunction(Function('b')), DeepEquals, []Location{})
}

func (s *IndexSuite) TestLimit(c *C) {
	c.Assert(locodes(s.ix.Seaports(2)), DeepEquals, []string{"BE ANR", "BE BRU"})
	c.Assert(s.ix.Seaports(100), HasLen, 8)
	c.Assert(s.ix.Seaports(0), DeepEquals, []Location{})
	c.Assert(s.ix.Seaports(-1), DeepEquals, []Location{})
}

func (s *IndexSuite) TestFindByCountryAndFunction(c *C) {
	c.Assert(locodes(s.ix.FindByCountryAndFunction("BE", Seaport)), DeepEquals, []string{"BE ANR", "BE BRU", "BE ZEE"})
	c.Assert(locodes(s.ix.FindByCountryAndFunction("BE", Seaport, 1)), DeepEquals, []string{"BE ANR"})
	c.Assert(locodes(s.ix.FindByCountryAndFunction("FI", BorderCrossing)), DeepEquals, []string{"FI VAA"})
	c.Assert(s.ix.FindByCountryAndFunction("NL", BorderCrossing), DeepEquals, []Location{})

	// Invalid arguments never match.
	c.Assert(s.ix.FindByCountryAndFunction("be", Seaport), DeepEquals, []Location{})
	c.Assert(s.ix.FindByCountryAndFunction(" BE", Seaport), DeepEquals, []Location{})
	c.Assert(s.ix.FindByCountryAndFunction("BEL", Seaport), DeepEquals, []Location{})
	c.Assert(s.ix.FindByCountryAndFunction("FI", Function('b')), DeepEquals, []Location{})
	c.Assert(s.ix.FindByCountryAndFunction("FI", Function('8')), DeepEquals, []Location{})
}

func (s *IndexSuite) TestFindByNameFuzzy(c *C) {
	c.Assert(locodes(s.ix.FindByNameFuzzy("Hamburh", 1)), DeepEquals, []string{"DE HAM"})
	c.Assert(locodes(s.ix.FindByNameFuzzy("Amsterdm", 1)), DeepEquals, []string{"NL AMS"})
	c.Assert(locodes(s.ix.FindByNameFuzzy("ROTTERDAM", 0)), DeepEquals, []string{"NL RTM"})
	c.Assert(s.ix.FindByNameFuzzy("Rotterdan", 0), DeepEquals, []Location{})
	c.Assert(s.ix.FindByNameFuzzy("", 2), DeepEquals, []Location{})
	c.Assert(s.ix.FindByNameFuzzy("Hamburg", -1), DeepEquals, []Location{})

	// Distances above the cap behave like the cap.
	capped := s.ix.FindByNameFuzzy("Hambug", 10)
	c.Assert(len(capped) > 0, Equals, true)
	c.Assert(capped[0].Locode(), Equals, "DE HAM")
	c.Assert(locodes(capped), DeepEquals, locodes(s.ix.FindByNameFuzzy("Hambug", maxFuzzyDistance)))
}

func (s *IndexSuite) TestNearest(c *C) {
	l, ok := s.ix.Nearest(51.22, 4.40)
	c.Assert(ok, Equals, true)
	c.Assert(l.Locode(), Equals, "BE ANR")

	l, ok = s.ix.Nearest(40.7, -74.0)
	c.Assert(ok, Equals, true)
	c.Assert(l.Locode(), Equals, "US NYC")

	_, ok = s.ix.Nearest(0, 0)
	c.Assert(ok, Equals, false)

	_, ok = s.ix.Nearest(math.NaN(), 4.4)
	c.Assert(ok, Equals, false)
}

func (s *IndexSuite) TestWithin(c *C) {
	c.Assert(locodes(s.ix.Within(51.2167, 4.4167, 50)), DeepEquals, []string{"BE ANR", "BE BRU"})
	c.Assert(locodes(s.ix.Within(51.2167, 4.4167, 80)), DeepEquals, []string{"BE ANR", "BE BRU", "NL RTM"})
	c.Assert(locodes(s.ix.Within(51.2167, 4.4167, 50, 1)), DeepEquals, []string{"BE ANR"})
	c.Assert(locodes(s.ix.Within(52, 5, 1000)), DeepEquals, []string{
		"NL RTM", "NL AMS", "BE ANR", "BE BRU", "BE ZEE", "DE HAM", "SE GOT",
	})
	c.Assert(s.ix.Within(51.2167, 4.4167, 0), DeepEquals, []Location{})
	c.Assert(s.ix.Within(51.2167, 4.4167, -5), DeepEquals, []Location{})
	c.Assert(s.ix.Within(51.2167, 4.4167, 50, -1), DeepEquals, []Location{})
	c.Assert(s.ix.Within(math.Inf(1), 4.4167, 50), DeepEquals, []Location{})
}

func (s *IndexSuite) TestSubdivisions(c *C) {
	c.Assert(s.ix.Subdivisions(), HasLen, 10)

	sd, ok := s.ix.Subdivision("be", "van")
	c.Assert(ok, Equals, true)
	c.Assert(sd, DeepEquals, Subdivision{CountryCode: "BE", Code: "VAN", Name: "Antwerpen", Type: "Province"})

	_, ok = s.ix.Subdivision("BE", "XXX")
	c.Assert(ok, Equals, false)

	anr := s.ix.FindByLocode("BE ANR")[0]
	c.Assert(s.ix.SubdivisionName(anr), Equals, "Antwerpen")
	oil := s.ix.FindByLocode("XZ OIL")[0]
	c.Assert(s.ix.SubdivisionName(oil), Equals, "")

	c.Assert(s.ix.SubdivisionCountry("NSW"), Equals, "AU")
	c.Assert(s.ix.SubdivisionCountry("nsw"), Equals, "AU")
	c.Assert(s.ix.SubdivisionCountry("WA"), Equals, "")
	c.Assert(s.ix.SubdivisionCountry("ZZ"), Equals, "")
}

func (s *IndexSuite) TestResultsAreCopies(c *C) {
	r := s.ix.FindByLocode("BE")
	r[0] = Location{}
	c.Assert(s.ix.FindByLocode("BE")[0].Locode(), Equals, "BE ANR")

	all := s.ix.All()
	all[0] = Location{}
	c.Assert(s.ix.All()[0].Locode(), Equals, "BE ANR")
}

// smallIndexSuite covers the three-location collection used throughout the
// query engine documentation.
type smallIndexSuite struct {
	ix *Index
}

var _ = Suite(&smallIndexSuite{})

func (s *smallIndexSuite) SetUpTest(c *C) {
	s.ix = NewIndex([]Location{
		NewLocation(Attributes{CountryCode: "BE", CityCode: "SEA", FullName: "seaport", FunctionClassifier: "1"}),
		NewLocation(Attributes{CountryCode: "BE", CityCode: "AIR", FullName: "airport", FunctionClassifier: "4"}),
		NewLocation(Attributes{CountryCode: "NL", CityCode: "RAI", FullName: "railstation", FunctionClassifier: "2"}),
	})
}

func (s *smallIndexSuite) TestCountryAndFunction(c *C) {
	c.Assert(locodes(s.ix.FindByCountryAndFunction("BE", Seaport)), DeepEquals, []string{"BE SEA"})
	c.Assert(locodes(s.ix.FindByCountryAndFunction("BE", Airport)), DeepEquals, []string{"BE AIR"})
	c.Assert(locodes(s.ix.FindByCountryAndFunction("NL", RailTerminal)), DeepEquals, []string{"NL RAI"})
	c.Assert(s.ix.FindByCountryAndFunction("NL", Seaport), DeepEquals, []Location{})
	c.Assert(s.ix.FindByCountryAndFunction("be", Seaport), DeepEquals, []Location{})
}

func (s *smallIndexSuite) TestNoBorderCrossings(c *C) {
	c.Assert(s.ix.BorderCrossings(), DeepEquals, []Location{})
}

func (s *smallIndexSuite) TestNoCoordinates(c *C) {
	_, ok := s.ix.Nearest(50.85, 4.35)
	c.Assert(ok, Equals, false)
	c.Assert(s.ix.Within(50.85, 4.35, 500), DeepEquals, []Location{})
}

func (s *smallIndexSuite) TestNewIndexCopiesInput(c *C) {
	in := []Location{NewLocation(Attributes{CountryCode: "BE", CityCode: "SEA"})}
	ix := NewIndex(in)
	in[0] = Location{}
	c.Assert(ix.All()[0].Locode(), Equals, "BE SEA")
}

func BenchmarkFindByName(b *testing.B) {
	ix, _, err := Build(WithSourceDir("testdata/codelist"), WithEncoding(EncodingUTF8))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.FindByName("ant")
	}
}

func BenchmarkFindByNameFuzzy(b *testing.B) {
	ix, _, err := Build(WithSourceDir("testdata/codelist"), WithEncoding(EncodingUTF8))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.FindByNameFuzzy("Hamburh", 2)
	}
}
