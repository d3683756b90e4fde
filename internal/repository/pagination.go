package repository

// Page represents a simple limit/offset window for listing operations.
// Callers normalize it before it reaches a repository.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a window of items, the total count of the unfiltered set
// and the window that produced it.
type PageResult[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

const DefaultPageLimit = 50

// Sanitize replaces a non-positive limit with DefaultPageLimit and a negative offset with zero.
func Sanitize(p Page) Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
