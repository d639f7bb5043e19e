package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vbonduro/campista/internal/geocode"
)

const defaultHost = "https://api.mapbox.com"

// Client reverse-geocodes through the Mapbox places API.
type Client struct {
	host   string
	token  string
	client *http.Client
}

func New(token string) *Client {
	return NewWithHost(defaultHost, token)
}

func NewWithHost(host, token string) *Client {
	return &Client{
		host:   host,
		token:  token,
		client: &http.Client{},
	}
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (geocode.Place, error) {
	if c.token == "" {
		return geocode.Place{}, fmt.Errorf("missing mapbox token")
	}

	q := url.Values{}
	q.Set("types", "place,region,country")
	q.Set("language", "en")
	q.Set("access_token", c.token)
	reqURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%f,%f.json?%s", c.host, lng, lat, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to call mapbox: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geocode.Place{}, fmt.Errorf("mapbox returned status %d", resp.StatusCode)
	}

	var body struct {
		Features []struct {
			PlaceType []string `json:"place_type"`
			Text      string   `json:"text"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geocode.Place{}, fmt.Errorf("failed to decode response: %w", err)
	}

	var place geocode.Place
	for _, f := range body.Features {
		for _, pt := range f.PlaceType {
			text := f.Text
			switch pt {
			case "place":
				if place.City == nil {
					place.City = &text
				}
			case "region":
				if place.State == nil {
					place.State = &text
				}
			case "country":
				if place.Country == nil {
					place.Country = &text
				}
			}
		}
	}

	return place, nil
}
