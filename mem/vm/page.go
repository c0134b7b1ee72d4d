package vm

import "fmt"

// A Page is one virtual page of the address space.
//
// InMemory and FrameNumber are derived from the frame pool's occupancy. Only
// the frame pool writes them, at the moment a frame is occupied or evicted.
type Page struct {
	Number      int
	InMemory    bool
	FrameNumber int

	// LoadCount is how many times the page has been brought into a frame.
	LoadCount int
}

func (p *Page) String() string {
	if !p.InMemory {
		return fmt.Sprintf("Page %d - Not in Memory", p.Number)
	}

	return fmt.Sprintf("Page %d - In Memory (Frame %d)", p.Number, p.FrameNumber)
}

// AddressSpace is the fixed catalog of virtual pages.
type AddressSpace struct {
	pages []*Page
}

// NewAddressSpace creates size pages numbered from 0.
func NewAddressSpace(size int) (*AddressSpace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: address space size must be positive, got %d",
			ErrInvalidConfiguration, size)
	}

	as := &AddressSpace{pages: make([]*Page, size)}
	for i := range as.pages {
		as.pages[i] = &Page{Number: i, FrameNumber: NoFrame}
	}

	return as, nil
}

// Size returns the number of pages.
func (as *AddressSpace) Size() int {
	return len(as.pages)
}

// Contains tells if the page number is inside the address space.
func (as *AddressSpace) Contains(pageNumber int) bool {
	return pageNumber >= 0 && pageNumber < len(as.pages)
}

// Page returns the page with the given number.
func (as *AddressSpace) Page(pageNumber int) (*Page, error) {
	if !as.Contains(pageNumber) {
		return nil, fmt.Errorf("%w: page %d, valid range is [0, %d)",
			ErrOutOfRangeAddress, pageNumber, len(as.pages))
	}

	return as.pages[pageNumber], nil
}

// Pages returns all the pages, ordered by number.
func (as *AddressSpace) Pages() []*Page {
	return as.pages
}

// Reset marks every page as never loaded.
func (as *AddressSpace) Reset() {
	for _, p := range as.pages {
		p.InMemory = false
		p.FrameNumber = NoFrame
		p.LoadCount = 0
	}
}
