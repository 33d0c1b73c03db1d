// Package schedule holds the fixed grid of bookable times. Every slot the
// form can offer comes from this catalog; availability from the server only
// narrows it.
package schedule

// The bookable day runs 08:00-16:30 in half-hour steps, 18 slots total.
const (
	firstHour   = 8
	stepMinutes = 30
	slotCount   = 18
)

var catalog = buildCatalog()

func buildCatalog() []string {
	labels := make([]string, 0, slotCount)
	minutes := firstHour * 60
	for i := 0; i < slotCount; i++ {
		labels = append(labels, formatLabel(minutes))
		minutes += stepMinutes
	}
	return labels
}

func formatLabel(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return string([]byte{
		byte('0' + h/10), byte('0' + h%10),
		':',
		byte('0' + m/10), byte('0' + m%10),
	})
}

// Catalog returns the ordered slot labels ("08:00" through "16:30"). The returned
// slice is a copy.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// Len returns the number of slots in the catalog.
func Len() int {
	return len(catalog)
}

// Contains reports whether label is one of the catalog slots.
func Contains(label string) bool {
	for _, l := range catalog {
		if l == label {
			return true
		}
	}
	return false
}
