package colony

import (
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/cellpop/hooking"
	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/timing"
)

var _ = Describe("Colony", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *timing.SerialEngine
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = timing.NewSerialEngine()
		logger = slog.New(slog.NewTextHandler(GinkgoWriter,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report every day in order", func() {
		c := New("dish", engine, population.DefaultParams(), logger)

		hook := NewMockHook(mockCtrl)
		c.AcceptHook(hook)

		var reports []DayReport
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
			Expect(ctx.Pos).To(Equal(HookPosDayEnd))
			Expect(ctx.Domain).To(BeIdenticalTo(c))
			reports = append(reports, ctx.Item.(DayReport))
		}).Times(5)

		c.Start()
		Expect(engine.Run()).To(Succeed())

		Expect(reports).To(Equal([]DayReport{
			{Day: 1, Born: 1, Alive: 1},
			{Day: 2, Born: 1, Alive: 2},
			{Day: 3, Born: 2, Alive: 4},
			{Day: 4, Born: 4, Alive: 8},
			{Day: 5, Born: 8, Alive: 16},
		}))
		Expect(c.Alive()).To(Equal(int64(16)))
		Expect(c.Day()).To(Equal(5))
		Expect(engine.CurrentTime()).To(Equal(timing.VTimeInDay(5)))
	})

	It("should match the closed computation", func() {
		for a := 1; a <= 30; a += 3 {
			for b := 0; b <= 4; b++ {
				for cc := 1; cc <= 6; cc++ {
					p := population.Params{
						Horizon:           a,
						ReproductionDelay: b,
						Lifespan:          cc,
					}

					e := timing.NewSerialEngine()
					c := New("dish", e, p, nil)
					c.Start()

					Expect(e.Run()).To(Succeed())
					Expect(c.Alive()).To(
						Equal(population.CalculateCells(a, b, cc)), p.String())
				}
			}
		}
	})

	It("should not schedule anything for an empty horizon", func() {
		c := New("dish", engine, population.Params{
			Horizon:           0,
			ReproductionDelay: 1,
			Lifespan:          5,
		}, nil)

		c.Start()

		Expect(engine.Run()).To(Succeed())
		Expect(c.Alive()).To(BeZero())
		Expect(c.Day()).To(BeZero())
	})

	It("should reject unknown events", func() {
		c := New("dish", engine, population.DefaultParams(), nil)

		Expect(c.Handle("split")).To(MatchError(ContainSubstring("unknown event")))
	})

	It("should reject days out of order", func() {
		c := New("dish", engine, population.DefaultParams(), nil)

		Expect(c.Handle(&DayEvent{Day: 1})).To(Succeed())
		Expect(c.Handle(&DayEvent{Day: 3})).
			To(MatchError(ContainSubstring("out of order")))
		Expect(c.Handle(&DayEvent{Day: 1})).
			To(MatchError(ContainSubstring("out of order")))
	})

	It("should reject days past the horizon", func() {
		c := New("dish", engine, population.Params{
			Horizon:           1,
			ReproductionDelay: 1,
			Lifespan:          5,
		}, nil)

		Expect(c.Handle(&DayEvent{Day: 1})).To(Succeed())
		Expect(c.Handle(&DayEvent{Day: 2})).
			To(MatchError(ContainSubstring("past the horizon")))
	})
})
