package search

import (
	"time"

	"github.com/go-kit/kit/log"

	"github.com/andreiashu/locode"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) FindByLocode(prefix string) (locations []locode.Location) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "find_by_locode",
			"prefix", prefix,
			"results", len(locations),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.FindByLocode(prefix)
}

func (s *loggingService) FindByName(prefix string) (locations []locode.Location) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "find_by_name",
			"prefix", prefix,
			"results", len(locations),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.FindByName(prefix)
}

func (s *loggingService) FindByNameFuzzy(name string, maxDist int) (locations []locode.Location) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "find_by_name_fuzzy",
			"name", name,
			"distance", maxDist,
			"results", len(locations),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.FindByNameFuzzy(name, maxDist)
}

func (s *loggingService) FindByCountryAndFunction(countryCode string, fn locode.Function, limit ...int) (locations []locode.Location) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "find_by_country_and_function",
			"country", countryCode,
			"function", fn,
			"results", len(locations),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.FindByCountryAndFunction(countryCode, fn, limit...)
}

func (s *loggingService) FindByFunction(fn locode.Function, limit ...int) (locations []locode.Location) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "find_by_function",
			"function", fn,
			"results", len(locations),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.FindByFunction(fn, limit...)
}

func (s *loggingService) Nearby(lat, lng, radiusKm float64, limit ...int) (locations []locode.Location) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "nearby",
			"lat", lat,
			"lng", lng,
			"radius_km", radiusKm,
			"results", len(locations),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.Nearby(lat, lng, radiusKm, limit...)
}

func (s *loggingService) Subdivision(countryCode, code string) (sd locode.Subdivision, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "subdivision",
			"country", countryCode,
			"code", code,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Subdivision(countryCode, code)
}

func (s *loggingService) Country(countryCode string) (c Country, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "country",
			"country", countryCode,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Country(countryCode)
}

func (s *loggingService) Reload() (err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "reload",
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Reload()
}
