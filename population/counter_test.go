package population_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cellpop/population"
)

// powMod computes 2^n mod Modulus.
func powMod(n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r = r * 2 % population.Modulus
	}

	return r
}

var _ = Describe("CalculateCells", func() {
	DescribeTable("known values",
		func(a, b, c int, want int64) {
			Expect(population.CalculateCells(a, b, c)).To(Equal(want))
		},
		Entry("single day", 1, 1, 5, int64(1)),
		Entry("single day, no delay", 1, 0, 1, int64(1)),
		Entry("single day, sterile", 1, 9, 2, int64(1)),
		Entry("demo model", 5, 1, 5, int64(16)),
		Entry("first death", 6, 1, 5, int64(30)),
		Entry("delay 2 lifespan 4", 10, 2, 4, int64(14)),
		Entry("window never opens", 5, 10, 20, int64(1)),
		Entry("founder dies alone", 3, 3, 2, int64(0)),
		Entry("horizon zero", 0, 1, 5, int64(0)),
		Entry("negative horizon", -3, 1, 5, int64(0)),
	)

	It("should double every day when nobody dies", func() {
		for a := 1; a <= 100; a++ {
			Expect(population.CalculateCells(a, 1, 1000)).
				To(Equal(powMod(a-1)), "day %d", a)
		}
	})

	It("should reduce large counts modulo the modulus", func() {
		got := population.CalculateCells(5000, 1, 100000)

		Expect(got).To(Equal(powMod(4999)))
		Expect(got).To(BeNumerically(">=", 0))
		Expect(got).To(BeNumerically("<", population.Modulus))
	})

	It("should keep the founder only while the window stays empty", func() {
		trace, err := population.Run(population.Params{
			Horizon:           8,
			ReproductionDelay: 9,
			Lifespan:          12,
		})
		Expect(err).NotTo(HaveOccurred())

		for day := 2; day <= 8; day++ {
			Expect(trace.Born[day]).To(BeZero())
			Expect(trace.Total[day]).To(Equal(int64(1)))
		}
	})

	It("should be deterministic", func() {
		first := population.CalculateCells(777, 3, 40)
		for i := 0; i < 5; i++ {
			Expect(population.CalculateCells(777, 3, 40)).To(Equal(first))
		}
	})

	It("should not panic on nonsense parameters", func() {
		Expect(func() {
			population.CalculateCells(20, -4, 3)
			population.CalculateCells(20, 2, -3)
			population.CalculateCells(20, 0, 0)
		}).NotTo(Panic())
	})
})

var _ = Describe("Run", func() {
	It("should produce the demo trace", func() {
		trace, err := population.Run(population.DefaultParams())

		Expect(err).NotTo(HaveOccurred())
		Expect(trace.Born).To(Equal([]int64{0, 1, 1, 2, 4, 8, 0}))
		Expect(trace.Total).To(Equal([]int64{0, 1, 2, 4, 8, 16, 0}))
		Expect(trace.Result()).To(Equal(int64(16)))
		Expect(trace.Days()).To(Equal(5))
	})

	It("should hold the total invariant on every day", func() {
		p := population.Params{
			Horizon:           300,
			ReproductionDelay: 2,
			Lifespan:          17,
		}
		trace, err := population.Run(p)
		Expect(err).NotTo(HaveOccurred())

		for day := 2; day <= p.Horizon; day++ {
			want := (trace.Total[day-1] + trace.Born[day]) % population.Modulus
			if day-p.Lifespan >= 1 {
				want = (want - trace.Born[day-p.Lifespan] + population.Modulus) %
					population.Modulus
			}

			Expect(trace.Total[day]).To(Equal(want), "day %d", day)
		}
	})

	It("should agree across strategies", func() {
		for a := 1; a <= 25; a++ {
			for b := 0; b <= 6; b++ {
				for c := 1; c <= 8; c++ {
					p := population.Params{
						Horizon:           a,
						ReproductionDelay: b,
						Lifespan:          c,
					}

					fast, err := population.Run(p,
						population.WithStrategy(population.PrefixSum))
					Expect(err).NotTo(HaveOccurred())

					slow, err := population.Run(p,
						population.WithStrategy(population.WindowScan))
					Expect(err).NotTo(HaveOccurred())

					Expect(fast.Born).To(Equal(slow.Born), p.String())
					Expect(fast.Total).To(Equal(slow.Total), p.String())
					Expect(population.CalculateCells(a, b, c)).
						To(Equal(slow.Result()), p.String())
				}
			}
		}
	})

	It("should reject invalid parameters", func() {
		_, err := population.Count(population.Params{
			Horizon:           0,
			ReproductionDelay: 1,
			Lifespan:          5,
		})

		Expect(err).To(MatchError(population.ErrInvalidParams))
	})

	It("should reject unknown strategies", func() {
		_, err := population.Count(population.DefaultParams(),
			population.WithStrategy(population.Strategy(42)))

		Expect(err).To(MatchError(population.ErrUnknownStrategy))
	})
})

var _ = Describe("Strategy", func() {
	DescribeTable("parsing",
		func(name string, want population.Strategy) {
			s, err := population.ParseStrategy(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(want))
			Expect(s.String()).NotTo(BeEmpty())
		},
		Entry("default", "", population.PrefixSum),
		Entry("prefix sum", "prefix-sum", population.PrefixSum),
		Entry("window scan", "Window-Scan", population.WindowScan),
	)

	It("should fail on unknown names", func() {
		_, err := population.ParseStrategy("fft")
		Expect(err).To(MatchError(population.ErrUnknownStrategy))
	})
})
