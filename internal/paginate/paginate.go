// Package paginate slices ordered result sets into fixed-size pages.
package paginate

// Page is one window into an ordered sequence, plus the navigation
// affordances the UI needs to draw next/previous buttons.
type Page[T any] struct {
	Items   []T
	Index   int
	HasNext bool
	HasPrev bool
}

// Slice returns the zero-based page of the given size, clipped to bounds.
// An out-of-range index yields an empty page, never an error.
func Slice[T any](items []T, size, index int) Page[T] {
	p := Page[T]{Index: index}
	if size <= 0 || index < 0 {
		return p
	}
	p.HasPrev = index > 0
	// The range check runs before the multiplication so an oversized
	// index cannot overflow into a negative slice offset.
	if len(items) == 0 || index > (len(items)-1)/size {
		return p
	}
	start := index * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end]
	p.HasNext = end < len(items)
	return p
}
