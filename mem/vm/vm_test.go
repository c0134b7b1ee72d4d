package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AddressSpace", func() {
	It("should reject a non-positive size", func() {
		_, err := NewAddressSpace(0)

		Expect(err).To(MatchError(ErrInvalidConfiguration))
	})

	It("should number pages from zero", func() {
		as, err := NewAddressSpace(4)
		Expect(err).NotTo(HaveOccurred())

		p, err := as.Page(3)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Number).To(Equal(3))
		Expect(p.InMemory).To(BeFalse())
		Expect(p.FrameNumber).To(Equal(NoFrame))
	})

	It("should report out of range pages", func() {
		as, _ := NewAddressSpace(4)

		_, err := as.Page(4)
		Expect(err).To(MatchError(ErrOutOfRangeAddress))

		_, err = as.Page(-1)
		Expect(err).To(MatchError(ErrOutOfRangeAddress))
	})

	It("should forget residency on reset", func() {
		as, _ := NewAddressSpace(2)
		p, _ := as.Page(1)
		p.InMemory = true
		p.FrameNumber = 0
		p.LoadCount = 2

		as.Reset()

		Expect(p.InMemory).To(BeFalse())
		Expect(p.FrameNumber).To(Equal(NoFrame))
		Expect(p.LoadCount).To(BeZero())
	})
})

var _ = Describe("Statistics", func() {
	It("should report zero rates without accesses", func() {
		s := Statistics{}

		Expect(s.FaultRate()).To(BeZero())
		Expect(s.HitRatio()).To(BeZero())
		Expect(s.OccupancyPercent()).To(BeZero())
	})

	It("should derive rates", func() {
		s := Statistics{
			Accesses:       4,
			TLBHits:        1,
			PageFaults:     3,
			TotalFrames:    2,
			ResidentFrames: 1,
		}

		Expect(s.FaultRate()).To(Equal(75.0))
		Expect(s.HitRatio()).To(Equal(25.0))
		Expect(s.OccupancyPercent()).To(Equal(50.0))
	})

	It("should reset counters", func() {
		s := Statistics{Accesses: 3, PageFaults: 2}

		s.Reset(8)

		Expect(s).To(Equal(Statistics{TotalFrames: 8}))
	})
})

var _ = Describe("ParsePolicyKind", func() {
	It("should accept names in any case", func() {
		Expect(ParsePolicyKind("fifo")).To(Equal(PolicyFIFO))
		Expect(ParsePolicyKind(" Lru ")).To(Equal(PolicyLRU))
	})

	It("should reject unknown names", func() {
		_, err := ParsePolicyKind("clock")

		Expect(err).To(MatchError(ErrInvalidConfiguration))
	})
})
