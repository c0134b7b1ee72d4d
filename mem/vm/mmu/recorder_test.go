package mmu

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/vmsim/mem/vm"
)

var _ = Describe("RequestRecorder", func() {
	var (
		mockCtrl     *gomock.Controller
		dataRecorder *MockDataRecorder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		dataRecorder = NewMockDataRecorder(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record every completed translation", func() {
		dataRecorder.EXPECT().CreateTable(RequestTable, RequestRow{})

		var rows []RequestRow
		dataRecorder.EXPECT().
			InsertData(RequestTable, gomock.Any()).
			Do(func(_ string, entry any) {
				rows = append(rows, entry.(RequestRow))
			}).
			Times(2)

		recorder := NewRequestRecorder(dataRecorder)
		e := MakeBuilder().WithHook(recorder).Build("MMU")
		Expect(e.Configure(Config{4, 1, 1, vm.PolicyLRU})).To(Succeed())

		translateAll(e, 0, 1)
		_, err := e.Translate(context.Background(), 7)
		Expect(err).To(HaveOccurred())

		Expect(rows).To(HaveLen(2))
		Expect(rows[1]).To(Equal(RequestRow{
			Time:          2,
			Engine:        "MMU",
			Page:          1,
			Outcome:       string(OutcomeFault),
			Frame:         0,
			Evicted:       0,
			HasEvicted:    true,
			Accesses:      2,
			PageFaults:    2,
			Replacements:  1,
			ResidentPages: 1,
		}))
	})

	It("should flush the recorder", func() {
		dataRecorder.EXPECT().CreateTable(RequestTable, RequestRow{})
		dataRecorder.EXPECT().Flush()

		NewRequestRecorder(dataRecorder).Flush()
	})
})
