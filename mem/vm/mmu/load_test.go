package mmu

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmsim/mem/vm"
)

var _ = Describe("ParseHexPageList", func() {
	It("should parse hexadecimal items", func() {
		pages, err := ParseHexPageList("1A, 3,ff , 0x10")

		Expect(err).NotTo(HaveOccurred())
		Expect(pages).To(Equal([]int{0x1A, 3, 0xFF, 0x10}))
	})

	DescribeTable("malformed lists",
		func(input, position string) {
			_, err := ParseHexPageList(input)

			Expect(err).To(MatchError(ErrMalformedPageList))
			Expect(err.Error()).To(ContainSubstring(position))
		},
		Entry("empty", "  ", "empty"),
		Entry("empty item", "1,,2", "item 2"),
		Entry("not hexadecimal", "1,2,zz", "item 3"),
	)
})

var _ = Describe("ParseHexAddress", func() {
	It("should parse an address", func() {
		Expect(ParseHexAddress(" 0X1f ")).To(Equal(0x1F))
	})

	It("should reject garbage", func() {
		_, err := ParseHexAddress("g")

		Expect(err).To(MatchError(ErrMalformedPageList))
	})
})

var _ = Describe("RandomLoad", func() {
	It("should stay inside the address space", func() {
		rng := rand.New(rand.NewSource(1))

		l, err := RandomLoad(rng, 16, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(l.Pages).To(HaveLen(DefaultRandomLoadCount))
		Expect(l.BaseAddress).To(BeNumerically("<", 16))

		for _, p := range l.Pages {
			Expect(p).To(And(
				BeNumerically(">=", 0),
				BeNumerically("<", 16)))
		}
	})

	It("should be reproducible with the same seed", func() {
		a, _ := RandomLoad(rand.New(rand.NewSource(7)), 32, 5)
		b, _ := RandomLoad(rand.New(rand.NewSource(7)), 32, 5)

		Expect(a).To(Equal(b))
	})

	It("should round trip through its text form", func() {
		l := Load{BaseAddress: 0x1A, Pages: []int{3, 0xFF}}

		Expect(l.String()).To(Equal("1A: 3,FF"))

		pages, err := ParseHexPageList("3,FF")
		Expect(err).NotTo(HaveOccurred())
		Expect(pages).To(Equal(l.Pages))
	})

	It("should reject an empty address space", func() {
		_, err := RandomLoad(rand.New(rand.NewSource(1)), 0, 3)

		Expect(err).To(MatchError(vm.ErrInvalidConfiguration))
	})
})
