package mongostore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/princy-boutique/storefront/internal/catalog"
)

// newestFirst is the catalog sort; _id breaks createdAt ties.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

var oldestFirst = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

// PredicateFilter renders a catalog predicate as a BSON filter document.
// Top-level keys are implicitly ANDed.
func PredicateFilter(pred catalog.Predicate) bson.D {
	filter := bson.D{}

	category := bson.D{}
	if len(pred.IncludeCategories) > 0 {
		category = append(category, bson.E{Key: "$in", Value: pred.IncludeCategories})
	}
	if len(pred.ExcludeCategories) > 0 {
		category = append(category, bson.E{Key: "$nin", Value: pred.ExcludeCategories})
	}
	if len(category) > 0 {
		filter = append(filter, bson.E{Key: "category", Value: category})
	}

	for _, facet := range catalog.ScalarFacets {
		if values := pred.FacetValues(facet); len(values) > 0 {
			filter = append(filter, bson.E{Key: string(facet), Value: bson.D{{Key: "$in", Value: values}}})
		}
	}

	// $in against an array field matches on any shared element.
	if len(pred.Sizes) > 0 {
		filter = append(filter, bson.E{Key: "sizes", Value: bson.D{{Key: "$in", Value: pred.Sizes}}})
	}
	if len(pred.Colors) > 0 {
		filter = append(filter, bson.E{Key: "colors", Value: bson.D{{Key: "$in", Value: pred.Colors}}})
	}

	if pred.Featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *pred.Featured})
	}

	if price, ok := priceFilter(pred.PriceRanges); ok {
		filter = append(filter, price)
	}
	return filter
}

func priceFilter(ranges []catalog.PriceRange) (bson.E, bool) {
	var alternatives bson.A
	for _, r := range ranges {
		bounds := bson.D{}
		if r.Min != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *r.Min})
		}
		if r.Max != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *r.Max})
		}
		if len(bounds) == 0 {
			return bson.E{}, false
		}
		alternatives = append(alternatives, bson.D{{Key: "price", Value: bounds}})
	}
	switch len(alternatives) {
	case 0:
		return bson.E{}, false
	case 1:
		return alternatives[0].(bson.D)[0], true
	}
	return bson.E{Key: "$or", Value: alternatives}, true
}

// SearchFilter matches term case-insensitively as a literal substring of
// any search field.
func SearchFilter(term string) bson.D {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	alternatives := make(bson.A, len(catalog.SearchFields))
	for i, field := range catalog.SearchFields {
		alternatives[i] = bson.D{{Key: field, Value: pattern}}
	}
	return bson.D{{Key: "$or", Value: alternatives}}
}

var summaryProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "price", Value: 1},
	{Key: "images", Value: 1},
}
