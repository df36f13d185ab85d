package simulation

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cellpop/datarecording"
	"github.com/sarchlab/cellpop/population"
	"github.com/sarchlab/cellpop/tracing"
)

var _ = Describe("Simulation", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should run the demo model without recording", func() {
		s, err := MakeBuilder().Build()
		Expect(err).NotTo(HaveOccurred())
		defer s.Terminate()

		alive, err := s.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(alive).To(Equal(int64(16)))
		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.DataRecorder()).To(BeNil())
		Expect(s.OutputFile()).To(BeEmpty())
		Expect(s.Colony().Day()).To(Equal(5))
	})

	It("should agree with the closed computation", func() {
		p := population.Params{
			Horizon:           400,
			ReproductionDelay: 3,
			Lifespan:          11,
		}

		s, err := MakeBuilder().WithParams(p).Build()
		Expect(err).NotTo(HaveOccurred())

		alive, err := s.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(alive).To(Equal(population.CalculateCells(400, 3, 11)))
	})

	It("should refuse to run twice", func() {
		s, err := MakeBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run()
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run()
		Expect(err).To(MatchError(ContainSubstring("already ran")))
	})

	It("should reject invalid parameters", func() {
		_, err := MakeBuilder().
			WithParams(population.Params{Horizon: 5, Lifespan: 0}).
			Build()

		Expect(err).To(MatchError(population.ErrInvalidParams))
	})

	It("should reject an output file without recording", func() {
		_, err := MakeBuilder().WithOutputFileName("x").Build()

		Expect(err).To(HaveOccurred())
	})

	Context("with recording", func() {
		It("should write every day to the output file", func() {
			output := filepath.Join(dir, "run")

			s, err := MakeBuilder().
				WithRecording().
				WithOutputFileName(output).
				Build()
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Terminate()).To(Succeed())
			Expect(s.OutputFile()).To(Equal(output + ".sqlite3"))

			reader, err := datarecording.NewReader(s.OutputFile())
			Expect(err).NotTo(HaveOccurred())
			defer reader.Close()

			days, err := tracing.LoadDays(context.Background(), reader, s.ID())
			Expect(err).NotTo(HaveOccurred())
			Expect(days).To(HaveLen(5))
			Expect(days[4].Alive).To(Equal(int64(16)))
		})

		It("should share an existing recorder between runs", func() {
			recorder, err := datarecording.New(filepath.Join(dir, "shared"))
			Expect(err).NotTo(HaveOccurred())

			ids := []string{}
			for _, horizon := range []int{3, 4} {
				s, err := MakeBuilder().
					WithParams(population.Params{
						Horizon:           horizon,
						ReproductionDelay: 1,
						Lifespan:          5,
					}).
					WithDataRecorder(recorder).
					Build()
				Expect(err).NotTo(HaveOccurred())

				_, err = s.Run()
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Terminate()).To(Succeed())

				ids = append(ids, s.ID())
			}

			Expect(recorder.Close()).To(Succeed())

			reader, err := datarecording.NewReader(
				filepath.Join(dir, "shared.sqlite3"))
			Expect(err).NotTo(HaveOccurred())
			defer reader.Close()

			runs, err := tracing.LoadRuns(context.Background(), reader)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))

			for _, id := range ids {
				days, err := tracing.LoadDays(context.Background(), reader, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(days).NotTo(BeEmpty())
			}
		})

		It("should refuse to overwrite an existing file", func() {
			output := filepath.Join(dir, "taken")
			Expect(os.WriteFile(output+".sqlite3", nil, 0o644)).To(Succeed())

			_, err := MakeBuilder().
				WithRecording().
				WithOutputFileName(output).
				Build()

			Expect(err).To(MatchError(datarecording.ErrFileExists))
		})
	})
})
