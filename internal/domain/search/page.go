// Package search holds value types shared by the entity search pipelines.
package search

import (
	"fmt"

	"github.com/politylink/polisearch/internal/domain"
)

// DefaultFragmentSize is the snippet length used when the caller gives none.
const DefaultFragmentSize = 100

// Page is a validated result window.
type Page struct {
	number int
	size   int
}

// NewPage validates a 1-based page number and a positive page size.
func NewPage(number, size int) (Page, error) {
	if number < 1 {
		return Page{}, fmt.Errorf("%w: page %d", domain.ErrInvalidPage, number)
	}
	if size < 1 {
		return Page{}, fmt.Errorf("%w: page size %d", domain.ErrInvalidPage, size)
	}
	return Page{number: number, size: size}, nil
}

// From returns the zero-based offset of the window.
func (p Page) From() int { return (p.number - 1) * p.size }

// Size returns the window length.
func (p Page) Size() int { return p.size }
