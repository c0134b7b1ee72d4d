// Package backingstore is the secondary store that keeps pages evicted from
// the frame pool until they are faulted back in.
package backingstore

import (
	"fmt"
	"sort"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Store holds evicted pages keyed by page number.
type Store struct {
	pages map[int]*vm.Page
}

// New creates an empty Store.
func New() *Store {
	return &Store{pages: make(map[int]*vm.Page)}
}

// Store keeps a page, replacing any earlier copy with the same number.
func (s *Store) Store(page *vm.Page) {
	s.pages[page.Number] = page
}

// Retrieve removes a page from the store and returns it.
func (s *Store) Retrieve(pageNumber int) (*vm.Page, error) {
	page, found := s.pages[pageNumber]
	if !found {
		return nil, fmt.Errorf("%w: page %d", vm.ErrPageNotStored, pageNumber)
	}

	delete(s.pages, pageNumber)

	return page, nil
}

// Contains tells if a page is in the store.
func (s *Store) Contains(pageNumber int) bool {
	_, found := s.pages[pageNumber]
	return found
}

// Len returns the number of stored pages.
func (s *Store) Len() int {
	return len(s.pages)
}

// Pages returns the stored page numbers in ascending order.
func (s *Store) Pages() []int {
	numbers := make([]int, 0, len(s.pages))
	for n := range s.pages {
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)

	return numbers
}

// Clear drops every stored page.
func (s *Store) Clear() {
	s.pages = make(map[int]*vm.Page)
}
