package search

import (
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/andreiashu/locode"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	resultCount    metrics.Histogram
	Service
}

// NewInstrumentingService returns an instance of an instrumenting Service.
func NewInstrumentingService(counter metrics.Counter, latency, results metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		resultCount:    results,
		Service:        s,
	}
}

// NewPrometheusInstrumentingService registers the search metrics with the
// default Prometheus registry. Call it once per process.
func NewPrometheusInstrumentingService(s Service) Service {
	fieldKeys := []string{"method"}
	return NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "locode",
			Subsystem: "search_service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "locode",
			Subsystem: "search_service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "locode",
			Subsystem: "search_service",
			Name:      "result_count",
			Help:      "Number of locations returned per request.",
		}, fieldKeys),
		s,
	)
}

func (s *instrumentingService) observe(method string, begin time.Time, results int) {
	s.requestCount.With("method", method).Add(1)
	s.requestLatency.With("method", method).Observe(time.Since(begin).Seconds())
	if results >= 0 {
		s.resultCount.With("method", method).Observe(float64(results))
	}
}

func (s *instrumentingService) FindByLocode(prefix string) (locations []locode.Location) {
	defer func(begin time.Time) { s.observe("find_by_locode", begin, len(locations)) }(time.Now())
	return s.Service.FindByLocode(prefix)
}

func (s *instrumentingService) FindByName(prefix string) (locations []locode.Location) {
	defer func(begin time.Time) { s.observe("find_by_name", begin, len(locations)) }(time.Now())
	return s.Service.FindByName(prefix)
}

func (s *instrumentingService) FindByNameFuzzy(name string, maxDist int) (locations []locode.Location) {
	defer func(begin time.Time) { s.observe("find_by_name_fuzzy", begin, len(locations)) }(time.Now())
	return s.Service.FindByNameFuzzy(name, maxDist)
}

func (s *instrumentingService) FindByCountryAndFunction(countryCode string, fn locode.Function, limit ...int) (locations []locode.Location) {
	defer func(begin time.Time) { s.observe("find_by_country_and_function", begin, len(locations)) }(time.Now())
	return s.Service.FindByCountryAndFunction(countryCode, fn, limit...)
}

func (s *instrumentingService) FindByFunction(fn locode.Function, limit ...int) (locations []locode.Location) {
	defer func(begin time.Time) { s.observe("find_by_function", begin, len(locations)) }(time.Now())
	return s.Service.FindByFunction(fn, limit...)
}

func (s *instrumentingService) Nearby(lat, lng, radiusKm float64, limit ...int) (locations []locode.Location) {
	defer func(begin time.Time) { s.observe("nearby", begin, len(locations)) }(time.Now())
	return s.Service.Nearby(lat, lng, radiusKm, limit...)
}

func (s *instrumentingService) Subdivision(countryCode, code string) (locode.Subdivision, error) {
	defer func(begin time.Time) { s.observe("subdivision", begin, -1) }(time.Now())
	return s.Service.Subdivision(countryCode, code)
}

func (s *instrumentingService) Country(countryCode string) (Country, error) {
	defer func(begin time.Time) { s.observe("country", begin, -1) }(time.Now())
	return s.Service.Country(countryCode)
}

func (s *instrumentingService) Reload() error {
	defer func(begin time.Time) { s.observe("reload", begin, -1) }(time.Now())
	return s.Service.Reload()
}
