package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"

	"github.com/andreiashu/locode"
)

// defaultFuzzyDistance applies when "fuzzy" is given without "distance".
const defaultFuzzyDistance = 1

// MakeHandler returns a handler for the search service.
func MakeHandler(s Service, logger log.Logger) http.Handler {
	r := mux.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		kithttp.ServerErrorEncoder(encodeError),
	}

	findLocationsHandler := kithttp.NewServer(
		makeFindLocationsEndpoint(s),
		decodeFindLocationsRequest,
		encodeResponse,
		opts...,
	)
	subdivisionHandler := kithttp.NewServer(
		makeSubdivisionEndpoint(s),
		decodeSubdivisionRequest,
		encodeResponse,
		opts...,
	)
	countryHandler := kithttp.NewServer(
		makeCountryEndpoint(s),
		decodeCountryRequest,
		encodeResponse,
		opts...,
	)

	r.Handle("/locode/v1/locations", findLocationsHandler).Methods("GET")
	r.Handle("/locode/v1/subdivisions/{country}/{code}", subdivisionHandler).Methods("GET")
	r.Handle("/locode/v1/countries/{country}", countryHandler).Methods("GET")

	return r
}

// decodeFindLocationsRequest picks the first selector present, in order:
// locode, name, fuzzy, country (with function), function, lat/lng. A
// request without any selector yields no locations.
func decodeFindLocationsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	req := findLocationsRequest{}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("limit %q: %w", v, ErrInvalidArgument)
		}
		req.Limit = []int{limit}
	}

	switch {
	case q.Has("locode"):
		req.By, req.Query = selectLocode, q.Get("locode")
	case q.Has("name"):
		req.By, req.Query = selectName, q.Get("name")
	case q.Has("fuzzy"):
		req.By, req.Query, req.Distance = selectFuzzy, q.Get("fuzzy"), defaultFuzzyDistance
		if v := q.Get("distance"); v != "" {
			d, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("distance %q: %w", v, ErrInvalidArgument)
			}
			req.Distance = d
		}
	case q.Has("country"):
		fn, err := functionParam(q)
		if err != nil {
			return nil, err
		}
		req.By, req.Country, req.Function = selectCountryAndFunction, q.Get("country"), fn
	case q.Has("function"):
		fn, err := functionParam(q)
		if err != nil {
			return nil, err
		}
		req.By, req.Function = selectFunction, fn
	case q.Has("lat") || q.Has("lng"):
		var err error
		if req.Lat, err = floatParam(q, "lat"); err != nil {
			return nil, err
		}
		if req.Lng, err = floatParam(q, "lng"); err != nil {
			return nil, err
		}
		if q.Has("radius") {
			if req.Radius, err = floatParam(q, "radius"); err != nil {
				return nil, err
			}
		}
		req.By = selectNearby
	}
	return req, nil
}

// functionParam accepts a classifier tag ("1", "B") or a readable name
// ("seaport", "border_crossing").
func functionParam(q url.Values) (locode.Function, error) {
	v := q.Get("function")
	if fn, ok := locode.ParseFunction(v); ok {
		return fn, nil
	}
	if fn, ok := locode.FunctionByName(v); ok {
		return fn, nil
	}
	return 0, fmt.Errorf("function %q: %w", v, ErrInvalidArgument)
}

func floatParam(q url.Values, key string) (float64, error) {
	v := q.Get(key)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, v, ErrInvalidArgument)
	}
	return f, nil
}

func decodeSubdivisionRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	return subdivisionRequest{Country: vars["country"], Code: vars["code"]}, nil
}

func decodeCountryRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return countryRequest{Country: mux.Vars(r)["country"]}, nil
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(errorer); ok && e.error() != nil {
		encodeError(ctx, e.error(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

type errorer interface {
	error() error
}

// encode errors from business-logic
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrInvalidArgument):
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
