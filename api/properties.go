package handler

import (
	"strings"
)

// mockProperties is an illustrative stand-in for a future listings data
// source. It is read-only: handlers never mutate it.
var mockProperties = []Property{
	{
		ID:           "prop-001",
		Address:      "1247 Maple Grove Lane",
		City:         "Austin",
		State:        "TX",
		Price:        485000,
		Bedrooms:     3,
		Bathrooms:    2.5,
		PropertyType: "house",
		SquareFeet:   2150,
		Description:  "Updated two-story home with a fenced backyard near Zilker Park.",
	},
	{
		ID:           "prop-002",
		Address:      "88 Rainey St Unit 1204",
		City:         "Austin",
		State:        "TX",
		Price:        612000,
		Bedrooms:     2,
		Bathrooms:    2,
		PropertyType: "condo",
		SquareFeet:   1180,
		Description:  "Downtown high-rise condo with skyline views and concierge.",
	},
	{
		ID:           "prop-003",
		Address:      "501 Cedar Hollow Dr",
		City:         "Round Rock",
		State:        "TX",
		Price:        365000,
		Bedrooms:     4,
		Bathrooms:    2,
		PropertyType: "house",
		SquareFeet:   2400,
		Description:  "Family home on a quiet cul-de-sac, excellent school district.",
	},
	{
		ID:           "prop-004",
		Address:      "2205 Juniper Way",
		City:         "Austin",
		State:        "TX",
		Price:        289000,
		Bedrooms:     1,
		Bathrooms:    1,
		PropertyType: "apartment",
		SquareFeet:   720,
		Description:  "Bright one-bedroom close to the Domain tech corridor.",
	},
	{
		ID:           "prop-005",
		Address:      "914 Bluebonnet Trail",
		City:         "San Marcos",
		State:        "TX",
		Price:        335000,
		Bedrooms:     3,
		Bathrooms:    2,
		PropertyType: "townhouse",
		SquareFeet:   1650,
		Description:  "End-unit townhouse with attached garage near the river.",
	},
	{
		ID:           "prop-006",
		Address:      "77 Lakeshore Blvd",
		City:         "Austin",
		State:        "TX",
		Price:        1250000,
		Bedrooms:     5,
		Bathrooms:    4.5,
		PropertyType: "house",
		SquareFeet:   4300,
		Description:  "Lakefront property with private dock and guest casita.",
	},
	{
		ID:           "prop-007",
		Address:      "310 E Pecan St Unit 8",
		City:         "Pflugerville",
		State:        "TX",
		Price:        259000,
		Bedrooms:     2,
		Bathrooms:    1.5,
		PropertyType: "condo",
		SquareFeet:   980,
		Description:  "Recently renovated condo, walkable to old-town shops.",
	},
	{
		ID:           "prop-008",
		Address:      "4420 Sunset Ridge",
		City:         "Round Rock",
		State:        "TX",
		Price:        442000,
		Bedrooms:     3,
		Bathrooms:    2.5,
		PropertyType: "townhouse",
		SquareFeet:   1900,
		Description:  "Corner-lot townhouse with an office nook and two-car garage.",
	},
}

// SearchProperties filters the mock inventory by the given criteria. Empty or
// zero-valued filters are ignored, so an empty args returns every listing.
func SearchProperties(args PropertySearchArgs) []Property {
	results := []Property{}

	for _, p := range mockProperties {
		if args.City != "" && !strings.EqualFold(p.City, args.City) {
			continue
		}
		if args.PropertyType != "" && !strings.EqualFold(p.PropertyType, args.PropertyType) {
			continue
		}
		if args.MinBedrooms > 0 && p.Bedrooms < args.MinBedrooms {
			continue
		}
		if args.MinPrice > 0 && p.Price < args.MinPrice {
			continue
		}
		if args.MaxPrice > 0 && p.Price > args.MaxPrice {
			continue
		}
		results = append(results, p)
	}

	if args.Limit > 0 && len(results) > args.Limit {
		results = results[:args.Limit]
	}

	return results
}

// GetPropertyByID returns the listing with the given id, or nil
func GetPropertyByID(id string) *Property {
	for i := range mockProperties {
		if mockProperties[i].ID == id {
			return &mockProperties[i]
		}
	}
	return nil
}
