package mmu

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sarchlab/vmsim/mem/vm"
)

// ErrMalformedPageList is returned when a page list cannot be parsed.
var ErrMalformedPageList = errors.New("malformed page list")

// DefaultRandomLoadCount is the number of pages RandomLoad generates when
// asked for none.
const DefaultRandomLoadCount = 10

// A Load is a base address and the pages to translate after it.
type Load struct {
	BaseAddress int   `json:"base_address"`
	Pages       []int `json:"pages"`
}

// String formats the load as upper-case hexadecimal, "1A: 3,FF".
func (l Load) String() string {
	items := make([]string, len(l.Pages))
	for i, p := range l.Pages {
		items[i] = strings.ToUpper(strconv.FormatInt(int64(p), 16))
	}

	return strings.ToUpper(strconv.FormatInt(int64(l.BaseAddress), 16)) +
		": " + strings.Join(items, ",")
}

// ParseHexAddress parses one hexadecimal number, with or without a 0x prefix.
func ParseHexAddress(s string) (int, error) {
	item := strings.TrimSpace(s)
	if item == "" {
		return 0, fmt.Errorf("%w: address is empty", ErrMalformedPageList)
	}

	n, err := parseHex(item)
	if err != nil {
		return 0, fmt.Errorf("%w: address %q is not hexadecimal",
			ErrMalformedPageList, item)
	}

	return n, nil
}

// ParseHexPageList parses a comma-separated list of hexadecimal page numbers
// such as "1A, 3, ff". The position of the first malformed item is reported.
func ParseHexPageList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: list is empty", ErrMalformedPageList)
	}

	items := strings.Split(s, ",")
	pages := make([]int, 0, len(items))

	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("%w: item %d is empty",
				ErrMalformedPageList, i+1)
		}

		n, err := parseHex(item)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d %q is not hexadecimal",
				ErrMalformedPageList, i+1, item)
		}

		pages = append(pages, n)
	}

	return pages, nil
}

func parseHex(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	n, err := strconv.ParseInt(s, 16, 0)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// RandomLoad picks a random base address and n random pages, all inside an
// address space of the given size.
func RandomLoad(rng *rand.Rand, addressSpaceSize, n int) (Load, error) {
	if addressSpaceSize <= 0 {
		return Load{}, fmt.Errorf("%w: address space size must be positive, got %d",
			vm.ErrInvalidConfiguration, addressSpaceSize)
	}

	if n <= 0 {
		n = DefaultRandomLoadCount
	}

	l := Load{
		BaseAddress: rng.Intn(addressSpaceSize),
		Pages:       make([]int, n),
	}

	for i := range l.Pages {
		l.Pages[i] = rng.Intn(addressSpaceSize)
	}

	return l, nil
}
