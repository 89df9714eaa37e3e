package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/strelka-labs/meeting-assistant/internal/model"
)

func TestYandexClient_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("geocode"); got != "Уфа, Королева 30" {
			t.Errorf("geocode param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[
            {"GeoObject":{"Point":{"pos":"55.958727 54.735152"}}}
        ]}}}`))
	}))
	defer srv.Close()

	c := NewYandexClient(srv.URL, "test-key")
	p, err := c.Geocode(context.Background(), "Уфа, Королева 30")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if p.Lat != 54.735152 || p.Lon != 55.958727 {
		t.Fatalf("point = %+v", p)
	}
}

func TestYandexClient_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[]}}}`))
	}))
	defer srv.Close()

	c := NewYandexClient(srv.URL, "test-key")
	if _, err := c.Geocode(context.Background(), "нигде"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestYandexClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewYandexClient(srv.URL, "bad-key")
	if _, err := c.Geocode(context.Background(), "Уфа"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestAddressLink_EscapesQuery(t *testing.T) {
	link := AddressLink("Уфа, Ленина 5")
	if strings.Contains(link, " ") {
		t.Fatalf("link not escaped: %s", link)
	}
	if !strings.HasPrefix(link, "https://yandex.ru/maps/?text=") {
		t.Fatalf("link = %s", link)
	}
}

func TestRouteLink_ContainsBothPoints(t *testing.T) {
	link := RouteLink(Point{Lat: 54.7, Lon: 55.9}, Point{Lat: 54.8, Lon: 56.0})
	if !strings.Contains(link, "rtext=54.700000,55.900000~54.800000,56.000000") {
		t.Fatalf("link = %s", link)
	}
}
