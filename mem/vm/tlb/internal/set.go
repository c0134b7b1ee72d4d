// Package internal provides the recency-ordered storage of the TLB.
package internal

import (
	"container/list"
)

// A Block is one cached translation.
type Block struct {
	Page  int
	Frame int
}

// A Set holds a bounded number of blocks ordered from least to most recently
// visited.
type Set interface {
	// Lookup returns the block of a page without changing the order.
	Lookup(page int) (Block, bool)

	// Visit makes the block of a page the most recently used one.
	Visit(page int)

	// Insert adds or updates a block and makes it the most recently used. If
	// the set overflows, the least recently used block is evicted and
	// returned.
	Insert(page, frame int) (evicted Block, hasEvicted bool)

	// Len returns the number of blocks.
	Len() int

	// Blocks returns the blocks from least to most recently used.
	Blocks() []Block

	// Reset removes every block.
	Reset()
}

// NewSet creates a new Set that holds at most numWays blocks.
func NewSet(numWays int) Set {
	s := &setImpl{numWays: numWays}
	s.Reset()

	return s
}

type setImpl struct {
	numWays   int
	visitList *list.List
	pageIndex map[int]*list.Element
}

func (s *setImpl) Lookup(page int) (Block, bool) {
	elem, found := s.pageIndex[page]
	if !found {
		return Block{}, false
	}

	return elem.Value.(Block), true
}

func (s *setImpl) Visit(page int) {
	elem, found := s.pageIndex[page]
	if !found {
		return
	}

	s.visitList.MoveToBack(elem)
}

func (s *setImpl) Insert(page, frame int) (Block, bool) {
	block := Block{Page: page, Frame: frame}

	if elem, found := s.pageIndex[page]; found {
		elem.Value = block
		s.visitList.MoveToBack(elem)

		return Block{}, false
	}

	s.pageIndex[page] = s.visitList.PushBack(block)

	if s.visitList.Len() <= s.numWays {
		return Block{}, false
	}

	return s.evict(), true
}

func (s *setImpl) evict() Block {
	leastVisited := s.visitList.Front()
	block := s.visitList.Remove(leastVisited).(Block)
	delete(s.pageIndex, block.Page)

	return block
}

func (s *setImpl) Len() int {
	return s.visitList.Len()
}

func (s *setImpl) Blocks() []Block {
	blocks := make([]Block, 0, s.visitList.Len())
	for e := s.visitList.Front(); e != nil; e = e.Next() {
		blocks = append(blocks, e.Value.(Block))
	}

	return blocks
}

func (s *setImpl) Reset() {
	s.visitList = list.New()
	s.pageIndex = make(map[int]*list.Element, s.numWays)
}
