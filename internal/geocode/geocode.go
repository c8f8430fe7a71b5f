package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client resolves a coordinate to a human address through the MapQuest
// reverse-geocoding API. Best effort only: every failure path degrades to
// the raw "lat,lng" string, never to an error the caller must handle.
type Client struct {
	apiKey string
	http   *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

type reverseResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			PostalCode string `json:"postalCode"`
		} `json:"locations"`
	} `json:"results"`
}

// ReverseGeocode returns a display address for the coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	fallback := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if c.apiKey == "" {
		return fallback
	}

	u := fmt.Sprintf(
		"https://www.mapquestapi.com/geocoding/v1/reverse?key=%s&location=%s",
		url.QueryEscape(c.apiKey),
		url.QueryEscape(fmt.Sprintf("%f,%f", lat, lng)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fallback
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fallback
	}

	if len(decoded.Results) == 0 || len(decoded.Results[0].Locations) == 0 {
		return fallback
	}

	loc := decoded.Results[0].Locations[0]
	if loc.Street == "" && loc.AdminArea5 == "" {
		return fallback
	}

	addr := loc.Street
	if loc.AdminArea5 != "" {
		if addr != "" {
			addr += ", "
		}
		addr += loc.AdminArea5
	}
	if loc.PostalCode != "" {
		addr += ", " + loc.PostalCode
	}
	return addr
}
