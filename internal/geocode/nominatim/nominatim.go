package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vbonduro/campista/internal/geocode"
)

const defaultHost = "https://nominatim.openstreetmap.org"

// Client reverse-geocodes through a Nominatim instance. No credential is
// required, which makes it the default backend.
type Client struct {
	host      string
	userAgent string
	client    *http.Client
}

func New(userAgent string) *Client {
	return NewWithHost(defaultHost, userAgent)
}

func NewWithHost(host, userAgent string) *Client {
	return &Client{
		host:      host,
		userAgent: userAgent,
		client:    &http.Client{},
	}
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (geocode.Place, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))
	q.Set("format", "jsonv2")
	q.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to call nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geocode.Place{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var body struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geocode.Place{}, fmt.Errorf("failed to decode response: %w", err)
	}

	var place geocode.Place
	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	if city != "" {
		place.City = &city
	}
	if s := body.Address.State; s != "" {
		place.State = &s
	}
	if s := body.Address.Country; s != "" {
		place.Country = &s
	}

	return place, nil
}
