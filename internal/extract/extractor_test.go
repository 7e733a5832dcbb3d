package extract_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simextract/internal/extract"
	"github.com/san-kum/simextract/internal/npy"
)

var _ = Describe("Extractor", func() {
	var (
		ctx    context.Context
		driver *fakeDriver
		outDir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = newFakeDriver(3, 4, "ptEval1", "ptEval2")
		outDir = GinkgoT().TempDir()
	})

	Describe("Run", func() {
		It("gathers every plot for every solution", func() {
			result, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).NotTo(HaveOccurred())

			Expect(driver.loaded).To(Equal("model.yaml"))
			Expect(result.Group).To(Equal("pg1"))
			Expect(result.Plots).To(Equal([]string{"ptEval1", "ptEval2"}))
			Expect(result.Times).To(Equal([]float64{0, 0.5, 1, 1.5}))
			Expect(result.Shape()).To(Equal(npy.Shape{3, 2, 4}))
			Expect(result.Data[2][1][3]).To(Equal(213.0))
			Expect(result.Validate()).To(Succeed())
		})

		It("copies the driver's slices", func() {
			result, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).NotTo(HaveOccurred())

			driver.values["ptEval1"][0][0] = -1
			driver.times[0] = -1
			Expect(result.Data[0][0][0]).To(Equal(0.0))
			Expect(result.Times[0]).To(Equal(0.0))
		})

		It("reports model load failures", func() {
			driver.loadErr = errors.New("file not found")
			_, err := extract.New(driver, nil).Run(ctx, "missing.mph", "pg1")
			Expect(err).To(MatchError(extract.ErrModelLoad))
			Expect(err.Error()).To(ContainSubstring("missing.mph"))
		})

		It("keeps the driver's error chain on load failures", func() {
			driver.loadErr = fmt.Errorf("open missing.csv: %w", os.ErrNotExist)
			_, err := extract.New(driver, nil).Run(ctx, "missing.csv", "pg1")
			Expect(err).To(MatchError(extract.ErrModelLoad))
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})

		It("reports unknown plot groups", func() {
			_, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg9")
			Expect(err).To(MatchError(ContainSubstring("pg9")))
		})

		It("rejects a group without active plots", func() {
			driver.plots = nil
			_, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).To(MatchError(extract.ErrShapeMismatch))
		})

		It("rejects plots that disagree on the solution count", func() {
			driver.plots[1].Solutions = 2
			_, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).To(MatchError(extract.ErrShapeMismatch))
		})

		It("rejects a zero solution count", func() {
			driver.plots[0].Solutions = 0
			driver.plots[1].Solutions = 0
			_, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).To(MatchError(extract.ErrShapeMismatch))
		})

		It("rejects an empty time base", func() {
			driver.times = nil
			_, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).To(MatchError(extract.ErrShapeMismatch))
		})

		It("rejects ragged series with the offending plot and solution", func() {
			driver.values["ptEval2"][1] = driver.values["ptEval2"][1][:3]
			_, err := extract.New(driver, nil).Run(ctx, "model.yaml", "pg1")
			Expect(err).To(MatchError(extract.ErrShapeMismatch))

			var shapeErr *extract.ShapeError
			Expect(errors.As(err, &shapeErr)).To(BeTrue())
			Expect(*shapeErr).To(Equal(extract.ShapeError{Solution: 1, Plot: "ptEval2", Want: 4, Got: 3}))
		})

		It("stops when the context is canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := extract.New(driver, nil).Run(canceled, "model.yaml", "pg1")
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("ExtractToFile", func() {
		It("writes a container that decodes to the extracted data", func() {
			out := filepath.Join(outDir, "model.npy")
			result, err := extract.New(driver, nil).ExtractToFile(ctx, "model.yaml", "pg1", out)
			Expect(err).NotTo(HaveOccurred())

			shape, data, err := npy.ReadFile(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(shape).To(Equal(npy.Shape{3, 2, 4}))
			Expect(data).To(Equal(result.Data))
		})

		It("produces no file for ragged input", func() {
			driver.values["ptEval1"][2] = append(driver.values["ptEval1"][2], 99)
			out := filepath.Join(outDir, "model.npy")

			_, err := extract.New(driver, nil).ExtractToFile(ctx, "model.yaml", "pg1", out)
			Expect(err).To(MatchError(extract.ErrShapeMismatch))

			_, statErr := os.Stat(out)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
			entries, _ := os.ReadDir(outDir)
			Expect(entries).To(BeEmpty())
		})
	})
})

var _ = Describe("Result", func() {
	It("rejects an empty result", func() {
		Expect(extract.Result{}.Validate()).To(MatchError(extract.ErrShapeMismatch))
	})

	It("rejects ragged data", func() {
		r := extract.Result{
			Plots: []string{"a", "b"},
			Times: []float64{0, 1},
			Data:  [][][]float64{{{1, 2}, {3}}},
		}
		err := r.Validate()
		Expect(err).To(MatchError(extract.ErrShapeMismatch))
		Expect(r.WriteNPY(filepath.Join(GinkgoT().TempDir(), "x.npy"))).To(MatchError(extract.ErrShapeMismatch))
	})
})
