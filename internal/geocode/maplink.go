package geocode

import (
	"fmt"
	"net/url"
)

// AddressLink builds a navigator link that searches for the address text.
// Used when geocoding is unavailable or failed.
func AddressLink(address string) string {
	return fmt.Sprintf("https://yandex.ru/maps/?text=%s&rtt=auto", url.QueryEscape(address))
}

// PointLink builds a route link to a destination point with no origin;
// the navigator will pick the user's current position.
func PointLink(dest Point) string {
	return fmt.Sprintf("https://yandex.ru/maps/?rtext=~%f,%f&rtt=auto", dest.Lat, dest.Lon)
}

// RouteLink builds a route link from an origin to a destination.
func RouteLink(from, to Point) string {
	return fmt.Sprintf("https://yandex.ru/maps/?rtext=%f,%f~%f,%f&rtt=auto", from.Lat, from.Lon, to.Lat, to.Lon)
}
