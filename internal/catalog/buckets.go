package catalog

// PriceBucket is a named, fixed price sub-range used by the "price"
// parameter.
type PriceBucket struct {
	Name  string
	Range PriceRange
}

var PriceBuckets = []PriceBucket{
	{Name: "0-2000", Range: between(0, 2000)},
	{Name: "2000-5000", Range: between(2000, 5000)},
	{Name: "5000-10000", Range: between(5000, 10000)},
	{Name: "10000+", Range: atLeast(10000)},
}

// LookupBucket returns the range for a bucket name.
func LookupBucket(name string) (PriceRange, bool) {
	for _, b := range PriceBuckets {
		if b.Name == name {
			return b.Range, true
		}
	}
	return PriceRange{}, false
}

func between(min, max float64) PriceRange {
	return PriceRange{Min: &min, Max: &max}
}

func atLeast(min float64) PriceRange {
	return PriceRange{Min: &min}
}
