package population_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cellpop/population"
)

var _ = Describe("Stepper", func() {
	var s *population.Stepper

	BeforeEach(func() {
		s = population.NewStepper(population.DefaultParams())
		s.Advance()
		s.Advance()
	})

	It("should stop on the third day", func() {
		Expect(s.Day()).To(Equal(3))
		Expect(s.Alive()).To(Equal(int64(4)))
		Expect(s.Done()).To(BeFalse())
	})

	DescribeTable("per-day counts",
		func(day int, born, total int64) {
			Expect(s.Born(day)).To(Equal(born))
			Expect(s.Total(day)).To(Equal(total))
		},
		Entry("before the first day", -1, int64(0), int64(0)),
		Entry("day zero", 0, int64(0), int64(0)),
		Entry("the founder", 1, int64(1), int64(1)),
		Entry("the current day", 3, int64(2), int64(4)),
		Entry("the next day", 4, int64(0), int64(0)),
		Entry("past the horizon", 9, int64(0), int64(0)),
	)

	It("should finish at the horizon and refuse to advance further", func() {
		Expect(s.Finish()).To(Equal(int64(16)))
		Expect(s.Done()).To(BeTrue())

		_, alive, ok := s.Advance()

		Expect(ok).To(BeFalse())
		Expect(alive).To(Equal(int64(16)))
		Expect(s.Born(5)).To(Equal(int64(8)))
	})

	It("should start empty when the horizon is below one", func() {
		empty := population.NewStepper(population.Params{
			Horizon:           0,
			ReproductionDelay: 1,
			Lifespan:          5,
		})

		Expect(empty.Day()).To(Equal(0))
		Expect(empty.Alive()).To(BeZero())
		Expect(empty.Born(1)).To(BeZero())
		Expect(empty.Finish()).To(BeZero())
	})
})
