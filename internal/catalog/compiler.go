package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by Compile.
const (
	ParamCategory = "category"
	ParamExclude  = "exclude"
	ParamSize     = "size"
	ParamColor    = "color"
	ParamFeatured = "featured"
	ParamPrice    = "price"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamPage     = "page"
	ParamLimit    = "limit"
)

// Compile translates catalog query parameters into a Predicate. Facet input
// never fails: unknown price buckets are ignored and malformed numeric bounds
// are dropped.
func Compile(values url.Values) Predicate {
	var p Predicate

	if include, ok := tokens(values, ParamCategory); ok {
		p.IncludeCategories = include
	}
	if exclude, ok := tokens(values, ParamExclude); ok {
		p.ExcludeCategories = exclude
	}

	for _, f := range ScalarFacets {
		if set, ok := tokens(values, string(f)); ok {
			if p.Facets == nil {
				p.Facets = make(map[Facet][]string)
			}
			p.Facets[f] = set
		}
	}

	if sizes, ok := tokens(values, ParamSize); ok {
		p.Sizes = sizes
	}
	if colors, ok := tokens(values, ParamColor); ok {
		p.Colors = colors
	}

	// Present with any value, including "" and "false", constrains.
	if values.Has(ParamFeatured) {
		featured := strings.TrimSpace(values.Get(ParamFeatured)) == "true"
		p.Featured = &featured
	}

	p.PriceRanges = compilePrice(values)

	return p
}

// compilePrice prefers the bucket list. Explicit bounds are used only when
// no known bucket was requested.
func compilePrice(values url.Values) []PriceRange {
	if names, ok := tokens(values, ParamPrice); ok {
		var ranges []PriceRange
		for _, name := range names {
			if r, ok := LookupBucket(name); ok {
				ranges = append(ranges, r)
			}
		}
		if len(ranges) > 0 {
			return ranges
		}
	}

	min := parseBound(values.Get(ParamMinPrice))
	max := parseBound(values.Get(ParamMaxPrice))
	if min == nil && max == nil {
		return nil
	}
	return []PriceRange{{Min: min, Max: max}}
}

func parseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// tokens splits every occurrence of key on commas, trims and percent-decodes
// each token and drops empty ones. ok is false when nothing is left.
func tokens(values url.Values, key string) ([]string, bool) {
	raw, present := values[key]
	if !present {
		return nil, false
	}

	var out []string
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			token := decode(strings.TrimSpace(part))
			if token == "" {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out, len(out) > 0
}

// decode undoes a second level of percent-encoding that clients apply to
// values such as "Silk%20Blend". Tokens that are not valid escapes are kept.
func decode(token string) string {
	if !strings.Contains(token, "%") {
		return token
	}
	decoded, err := url.PathUnescape(token)
	if err != nil {
		return token
	}
	return strings.TrimSpace(decoded)
}
