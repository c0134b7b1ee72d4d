package framepool

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/vmsim/mem/vm"
)

var _ = Describe("FramePool", func() {
	var (
		mockCtrl *gomock.Controller
		sink     *MockPageSink
		space    *vm.AddressSpace
		pool     *FramePool
	)

	page := func(n int) *vm.Page {
		p, err := space.Page(n)
		Expect(err).NotTo(HaveOccurred())

		return p
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sink = NewMockPageSink(mockCtrl)

		var err error
		space, err = vm.NewAddressSpace(8)
		Expect(err).NotTo(HaveOccurred())

		pool, err = New(3, sink)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should reject a non-positive size", func() {
		_, err := New(0, sink)

		Expect(err).To(MatchError(vm.ErrInvalidConfiguration))
	})

	It("should start empty", func() {
		Expect(pool.FreeCount()).To(Equal(3))
		Expect(pool.IsFull()).To(BeFalse())
		Expect(pool.Size()).To(Equal(3))
	})

	It("should allocate the lowest free frame", func() {
		Expect(pool.Occupy(0, page(5))).To(Succeed())
		Expect(pool.Occupy(2, page(6))).To(Succeed())

		frame, ok := pool.AllocateFree()

		Expect(ok).To(BeTrue())
		Expect(frame).To(Equal(1))
	})

	It("should report no free frame when full", func() {
		for i := 0; i < 3; i++ {
			Expect(pool.Occupy(i, page(i))).To(Succeed())
		}

		_, ok := pool.AllocateFree()

		Expect(ok).To(BeFalse())
		Expect(pool.IsFull()).To(BeTrue())
		Expect(pool.FreeCount()).To(BeZero())
	})

	It("should derive the page fields when occupying", func() {
		p := page(4)

		Expect(pool.Occupy(1, p)).To(Succeed())

		Expect(p.InMemory).To(BeTrue())
		Expect(p.FrameNumber).To(Equal(1))
		Expect(p.LoadCount).To(Equal(1))
		occupant, ok := pool.OccupantOf(1)
		Expect(ok).To(BeTrue())
		Expect(occupant).To(Equal(4))
	})

	It("should not occupy an occupied frame", func() {
		Expect(pool.Occupy(1, page(4))).To(Succeed())

		err := pool.Occupy(1, page(5))

		Expect(err).To(MatchError(vm.ErrFrameOccupied))
		Expect(page(5).InMemory).To(BeFalse())
	})

	It("should not load a page twice", func() {
		Expect(pool.Occupy(0, page(4))).To(Succeed())

		err := pool.Occupy(1, page(4))

		Expect(err).To(MatchError(vm.ErrPageAlreadyResident))
		Expect(pool.FreeCount()).To(Equal(2))
	})

	It("should reject frames out of range", func() {
		Expect(pool.Occupy(3, page(0))).To(MatchError(vm.ErrFrameOutOfRange))

		_, err := pool.Evict(-1)
		Expect(err).To(MatchError(vm.ErrFrameOutOfRange))
	})

	It("should evict to the sink", func() {
		p := page(4)
		Expect(pool.Occupy(2, p)).To(Succeed())
		sink.EXPECT().Store(p)

		evicted, err := pool.Evict(2)

		Expect(err).NotTo(HaveOccurred())
		Expect(evicted).To(Equal(4))
		Expect(p.InMemory).To(BeFalse())
		Expect(p.FrameNumber).To(Equal(vm.NoFrame))
		Expect(pool.FreeCount()).To(Equal(3))
		_, ok := pool.OccupantOf(2)
		Expect(ok).To(BeFalse())
	})

	It("should not evict an empty frame", func() {
		_, err := pool.Evict(0)

		Expect(err).To(MatchError(vm.ErrFrameEmpty))
	})

	It("should clear without storing", func() {
		p := page(1)
		Expect(pool.Occupy(0, p)).To(Succeed())

		pool.Clear()

		Expect(pool.FreeCount()).To(Equal(3))
		Expect(p.InMemory).To(BeFalse())
	})

	It("should keep resident count and free count consistent", func() {
		Expect(pool.Occupy(0, page(0))).To(Succeed())
		Expect(pool.Occupy(1, page(1))).To(Succeed())

		Expect(pool.ResidentCount()).To(Equal(pool.Size() - pool.FreeCount()))
		for _, f := range pool.Frames() {
			if f.IsEmpty() {
				continue
			}
			Expect(f.Occupant.FrameNumber).To(Equal(f.Number))
		}
	})
})
