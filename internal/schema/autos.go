// Package schema pins the listings dataset contract: the documented source
// header, the canonical snake_case naming scheme, the columns discarded as
// uninformative, and the plausibility bounds used by the range filters.
//
// The dataset is a crawl of used-car classified ads. Every stage downstream
// of the parser speaks canonical names only.
package schema

import (
	"fmt"
	"strings"
)

// Plausibility bounds for the cleaned table. A dollar is a legitimate auction
// opening bid; prices above 351000 are a discontinuous jump from the observed
// distribution and treated as entry artifacts. Registration cannot postdate
// the crawl window (the corpus ends in 2016); 1900 is the earliest year a car
// could plausibly be registered.
const (
	PriceMin = 1
	PriceMax = 351000

	RegistrationYearMin = 1900
	RegistrationYearMax = 2016
)

// SourceHeader is the documented 20-column header of the crawl, in file order.
var SourceHeader = []string{
	"dateCrawled",
	"name",
	"seller",
	"offerType",
	"price",
	"abtest",
	"vehicleType",
	"yearOfRegistration",
	"gearbox",
	"powerPS",
	"model",
	"odometer",
	"monthOfRegistration",
	"fuelType",
	"brand",
	"notRepairedDamage",
	"dateCreated",
	"nrOfPictures",
	"postalCode",
	"lastSeen",
}

// HeaderMap is the total rename from source header names to canonical keys.
// Two renames are semantic rather than mechanical: yearOfRegistration and
// monthOfRegistration become registration_year / registration_month for
// readability, and notRepairedDamage becomes unrepaired_damage.
var HeaderMap = map[string]string{
	"dateCrawled":         "date_crawled",
	"name":                "name",
	"seller":              "seller",
	"offerType":           "offer_type",
	"price":               "price",
	"abtest":              "ab_test",
	"vehicleType":         "vehicle_type",
	"yearOfRegistration":  "registration_year",
	"gearbox":             "gearbox",
	"powerPS":             "power_ps",
	"model":               "model",
	"odometer":            "odometer",
	"monthOfRegistration": "registration_month",
	"fuelType":            "fuel_type",
	"brand":               "brand",
	"notRepairedDamage":   "unrepaired_damage",
	"dateCreated":         "ad_created",
	"nrOfPictures":        "num_photos",
	"postalCode":          "postal_code",
	"lastSeen":            "last_seen",
}

// DroppedColumns are discarded right after renaming: seller and offer_type
// are near-constant across the corpus, num_photos is zero for every row.
// The loss is irreversible; later stages never see them.
var DroppedColumns = []string{"seller", "offer_type", "num_photos"}

// CleanColumns is the canonical column order of the cleaned table: the 20
// source columns minus the three dropped, with odometer carrying its unit in
// the name after coercion.
var CleanColumns = []string{
	"date_crawled",
	"name",
	"price",
	"ab_test",
	"vehicle_type",
	"registration_year",
	"gearbox",
	"power_ps",
	"model",
	"odometer_km",
	"registration_month",
	"fuel_type",
	"brand",
	"unrepaired_damage",
	"ad_created",
	"postal_code",
	"last_seen",
}

// IntColumns are the cleaned columns holding integers; everything else stays
// text. Used by the storage sinks to build DDL.
var IntColumns = map[string]struct{}{
	"price":              {},
	"registration_year":  {},
	"power_ps":           {},
	"odometer_km":        {},
	"registration_month": {},
	"postal_code":        {},
}

// CheckHeader verifies that a parsed header matches SourceHeader exactly, in
// count and in order. Any drift is fatal: the rename map is total and
// positional, so a reordered or truncated file would silently mislabel
// columns downstream.
func CheckHeader(got []string) error {
	if len(got) != len(SourceHeader) {
		return fmt.Errorf("schema drift: header has %d columns, want %d", len(got), len(SourceHeader))
	}
	for i, want := range SourceHeader {
		if strings.TrimSpace(got[i]) != want {
			return fmt.Errorf("schema drift: column %d is %q, want %q", i, got[i], want)
		}
	}
	return nil
}
