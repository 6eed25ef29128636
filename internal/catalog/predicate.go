// Package catalog compiles storefront query strings into store-neutral
// product predicates. It performs no I/O; every store backend renders a
// Predicate into its own query language and must agree with Matches.
package catalog

import (
	"github.com/princy-boutique/storefront/internal/models"
)

// Facet is a single-valued product attribute usable as a filter axis.
type Facet string

const (
	FacetFabric   Facet = "fabric"
	FacetWork     Facet = "work"
	FacetOccasion Facet = "occasion"
	FacetFit      Facet = "fit"
)

// ScalarFacets lists the single-valued facets in rendering order.
var ScalarFacets = []Facet{FacetFabric, FacetWork, FacetOccasion, FacetFit}

// Value returns the product's value for the facet.
func (f Facet) Value(p *models.Product) string {
	switch f {
	case FacetFabric:
		return p.Fabric
	case FacetWork:
		return p.Work
	case FacetOccasion:
		return p.Occasion
	case FacetFit:
		return p.Fit
	}
	return ""
}

// PriceRange is inclusive on both ends. A nil bound is open.
type PriceRange struct {
	Min *float64
	Max *float64
}

func (r PriceRange) Contains(price float64) bool {
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// Predicate is the compiled form of a catalog filter. Constraints on
// different fields are ANDed; values inside one field are ORed. A nil or
// empty field means no constraint.
type Predicate struct {
	IncludeCategories []string
	ExcludeCategories []string
	Facets            map[Facet][]string
	Sizes             []string
	Colors            []string
	Featured          *bool
	PriceRanges       []PriceRange
}

// FacetValues returns the requested values for f, or nil.
func (p Predicate) FacetValues(f Facet) []string {
	if p.Facets == nil {
		return nil
	}
	return p.Facets[f]
}

// IsEmpty reports whether the predicate matches every product.
func (p Predicate) IsEmpty() bool {
	if len(p.IncludeCategories) > 0 || len(p.ExcludeCategories) > 0 {
		return false
	}
	for _, f := range ScalarFacets {
		if len(p.FacetValues(f)) > 0 {
			return false
		}
	}
	return len(p.Sizes) == 0 && len(p.Colors) == 0 && p.Featured == nil && len(p.PriceRanges) == 0
}

// Matches evaluates the predicate against a single product.
func (p Predicate) Matches(prod *models.Product) bool {
	if len(p.IncludeCategories) > 0 && !contains(p.IncludeCategories, prod.Category) {
		return false
	}
	if contains(p.ExcludeCategories, prod.Category) {
		return false
	}
	for _, f := range ScalarFacets {
		if values := p.FacetValues(f); len(values) > 0 && !contains(values, f.Value(prod)) {
			return false
		}
	}
	if len(p.Sizes) > 0 && !intersects(p.Sizes, prod.Sizes) {
		return false
	}
	if len(p.Colors) > 0 && !intersects(p.Colors, prod.Colors) {
		return false
	}
	if p.Featured != nil && prod.Featured != *p.Featured {
		return false
	}
	if len(p.PriceRanges) > 0 {
		matched := false
		for _, r := range p.PriceRanges {
			if r.Contains(prod.Price) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(want, have []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}
