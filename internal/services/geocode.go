package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type GeocodeResult struct {
	Latitude  float64
	Longitude float64
}

const nominatimURL = "https://nominatim.openstreetmap.org/search"

// GeocodeAddress forward-geocodes a venue address via OSM Nominatim.
func GeocodeAddress(address, city string) (*GeocodeResult, error) {
	query := strings.TrimSpace(address)

	if city != "" {
		query = query + ", " + city
	}

	if query == "" {
		return nil, errors.New("address cannot be empty")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	client := &http.Client{Timeout: 5 * time.Second}

	req, err := http.NewRequest(http.MethodGet, nominatimURL+"?"+params.Encode(), nil)

	if err != nil {
		return nil, err
	}

	// Nominatim's usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "townhub/1.0")

	resp, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("geocoder returned status " + resp.Status)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, errors.New("no results for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)

	if err != nil {
		return nil, err
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)

	if err != nil {
		return nil, err
	}

	return &GeocodeResult{Latitude: lat, Longitude: lon}, nil
}
