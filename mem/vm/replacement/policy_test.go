package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmsim/mem/vm"
)

var _ = Describe("New", func() {
	It("should create the policy of each kind", func() {
		fifo, err := New(vm.PolicyFIFO)
		Expect(err).NotTo(HaveOccurred())
		Expect(fifo.Kind()).To(Equal(vm.PolicyFIFO))

		lru, err := New(vm.PolicyLRU)
		Expect(err).NotTo(HaveOccurred())
		Expect(lru.Kind()).To(Equal(vm.PolicyLRU))
	})

	It("should reject an unknown kind", func() {
		_, err := New(vm.PolicyKind("CLOCK"))

		Expect(err).To(MatchError(vm.ErrInvalidConfiguration))
	})
})

var _ = Describe("FIFO", func() {
	var p *FIFO

	BeforeEach(func() {
		p = NewFIFO()
	})

	It("should have no victim when empty", func() {
		_, ok := p.SelectVictim()

		Expect(ok).To(BeFalse())
	})

	It("should evict the first loaded page", func() {
		p.OnLoad(4)
		p.OnLoad(2)
		p.OnLoad(7)
		p.OnAccess(4)

		victim, ok := p.SelectVictim()

		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(4))
	})

	It("should count a replacement only for the selected victim", func() {
		p.OnLoad(1)
		p.OnLoad(2)

		p.OnEvict(2)
		Expect(p.ReplacementCount()).To(BeZero())

		victim, _ := p.SelectVictim()
		p.OnEvict(victim)

		Expect(p.ReplacementCount()).To(Equal(uint64(1)))
		Expect(p.Resident()).To(BeEmpty())
	})

	It("should not track a page twice", func() {
		p.OnLoad(1)
		p.OnLoad(1)

		Expect(p.Resident()).To(Equal([]int{1}))
	})

	It("should reset", func() {
		p.OnLoad(1)
		victim, _ := p.SelectVictim()
		p.OnEvict(victim)

		p.Reset()

		Expect(p.Resident()).To(BeEmpty())
		Expect(p.ReplacementCount()).To(BeZero())
	})
})
