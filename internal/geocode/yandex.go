// Package geocode resolves street addresses to coordinates via the
// Yandex geocoder HTTP API and builds navigator map links.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/strelka-labs/meeting-assistant/internal/model"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-form address to a point. Implementations
// return model.ErrNotFound when the address resolves to nothing.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Point, error)
}

// YandexClient calls the Yandex geocode-maps API.
type YandexClient struct {
	client *resty.Client
	apiKey string
}

// NewYandexClient builds a geocoder client. baseURL defaults to the
// public endpoint when empty.
func NewYandexClient(baseURL, apiKey string) *YandexClient {
	if baseURL == "" {
		baseURL = "https://geocode-maps.yandex.ru/1.x/"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &YandexClient{client: c, apiKey: apiKey}
}

// geocodeResponse mirrors the fragment of the Yandex response we read.
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"` // "lon lat"
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode implements Geocoder.
func (y *YandexClient) Geocode(ctx context.Context, address string) (Point, error) {
	var out geocodeResponse
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":  y.apiKey,
			"format":  "json",
			"geocode": address,
			"results": "1",
		}).
		SetResult(&out).
		Get("")
	if err != nil {
		return Point{}, fmt.Errorf("geocode request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Point{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode())
	}

	members := out.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return Point{}, model.ErrNotFound
	}
	return parsePos(members[0].GeoObject.Point.Pos)
}

// parsePos parses the "lon lat" pair Yandex returns.
func parsePos(pos string) (Point, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("geocode: malformed position %q", pos)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: malformed longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: malformed latitude: %w", err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}
