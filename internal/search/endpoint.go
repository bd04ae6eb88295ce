package search

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/andreiashu/locode"
)

// selector names the query a findLocationsRequest runs.
type selector int

const (
	selectNone selector = iota
	selectLocode
	selectName
	selectFuzzy
	selectCountryAndFunction
	selectFunction
	selectNearby
)

type findLocationsRequest struct {
	By       selector
	Query    string
	Distance int
	Country  string
	Function locode.Function
	Lat      float64
	Lng      float64
	Radius   float64
	Limit    []int
}

type findLocationsResponse struct {
	Locations []locode.Location `json:"locations"`
	Err       error             `json:"error,omitempty"`
}

func (r findLocationsResponse) error() error { return r.Err }

func makeFindLocationsEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(findLocationsRequest)
		var locations []locode.Location
		switch req.By {
		case selectLocode:
			locations = s.FindByLocode(req.Query)
		case selectName:
			locations = s.FindByName(req.Query)
		case selectFuzzy:
			locations = s.FindByNameFuzzy(req.Query, req.Distance)
		case selectCountryAndFunction:
			locations = s.FindByCountryAndFunction(req.Country, req.Function, req.Limit...)
		case selectFunction:
			locations = s.FindByFunction(req.Function, req.Limit...)
		case selectNearby:
			locations = s.Nearby(req.Lat, req.Lng, req.Radius, req.Limit...)
		default:
			locations = []locode.Location{}
		}
		if (req.By == selectLocode || req.By == selectName || req.By == selectFuzzy) && len(req.Limit) > 0 {
			locations = capLocations(locations, req.Limit[0])
		}
		return findLocationsResponse{Locations: locations}, nil
	}
}

func capLocations(locations []locode.Location, limit int) []locode.Location {
	if limit <= 0 {
		return []locode.Location{}
	}
	if len(locations) > limit {
		return locations[:limit:limit]
	}
	return locations
}

type subdivisionRequest struct {
	Country string
	Code    string
}

type subdivisionResponse struct {
	CountryCode string `json:"country_code,omitempty"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Err         error  `json:"error,omitempty"`
}

func (r subdivisionResponse) error() error { return r.Err }

func makeSubdivisionEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(subdivisionRequest)
		sd, err := s.Subdivision(req.Country, req.Code)
		return subdivisionResponse{
			CountryCode: sd.CountryCode,
			Code:        sd.Code,
			Name:        sd.Name,
			Type:        sd.Type,
			Err:         err,
		}, nil
	}
}

type countryRequest struct {
	Country string
}

type countryResponse struct {
	*Country
	Err error `json:"error,omitempty"`
}

func (r countryResponse) error() error { return r.Err }

func makeCountryEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(countryRequest)
		c, err := s.Country(req.Country)
		if err != nil {
			return countryResponse{Err: err}, nil
		}
		return countryResponse{Country: &c}, nil
	}
}
