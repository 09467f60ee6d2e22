package render_test

import (
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/render"
)

var _ = Describe("Accumulator", func() {
	var acc *render.Accumulator

	BeforeEach(func() {
		var err error
		acc, err = render.Init(render.RasterProvider{Ratio: 1}, 120, 80)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when ready", func() {
		It("starts on the default window", func() {
			w := acc.Window()
			Expect(w.ControlMin).To(Equal(2.8))
			Expect(w.ControlMax).To(Equal(4.0))
			Expect(w.ValueMin).To(Equal(0.0))
			Expect(w.ValueMax).To(Equal(1.0))
		})

		It("ignores empty and inverted ranges", func() {
			before := acc.Window()
			Expect(acc.SetRange(5, 5)).To(Succeed())
			Expect(acc.SetRange(5, 2)).To(Succeed())
			Expect(acc.Window()).To(Equal(before))
		})

		It("accumulates a sampled sweep without losing density", func() {
			rs := analysis.Linspace(2.8, 4, 120)
			var last color.RGBA
			for i, chunk := range analysis.Chunks(rs, 30) {
				sets := analysis.SampleBifurcation(chunk, 0.5, 200, 100)
				Expect(acc.AppendPoints(analysis.Pack(sets))).To(Succeed())

				img, err := acc.Image()
				Expect(err).NotTo(HaveOccurred())
				// r = 2.8 converges to (r-1)/r, the first column's brightest pixel
				c := img.RGBAAt(0, int(math.Floor((1-1.8/2.8)*80)))
				if i > 0 {
					Expect(c.R).To(BeNumerically(">=", last.R))
				}
				last = c
			}
			Expect(last.R).To(BeNumerically(">", 0))
		})

		It("keeps overlays off the density layer", func() {
			Expect(acc.AppendPoints([]float32{3.4, 0.5})).To(Succeed())
			before, err := acc.Image()
			Expect(err).NotTo(HaveOccurred())

			Expect(acc.DrawOverlayLine(3.0)).To(Succeed())
			Expect(acc.ClearOverlay()).To(Succeed())

			after, err := acc.Image()
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Pix).To(Equal(before.Pix))
		})

		It("clears on resize", func() {
			Expect(acc.AppendPoints([]float32{3.4, 0.5})).To(Succeed())
			Expect(acc.Resize(60, 40)).To(Succeed())

			img, err := acc.Image()
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(60))
			Expect(img.Bounds().Dy()).To(Equal(40))
			for i := 0; i < len(img.Pix); i += 4 {
				Expect(img.Pix[i]).To(BeZero())
			}
		})
	})

	Context("after destroy", func() {
		BeforeEach(func() {
			Expect(acc.Destroy()).To(Succeed())
		})

		It("fails every call", func() {
			Expect(acc.SetRange(3, 4)).To(MatchError(dynamo.ErrUseAfterDestroy))
			Expect(acc.AppendPoints(nil)).To(MatchError(dynamo.ErrUseAfterDestroy))
			Expect(acc.Clear()).To(MatchError(dynamo.ErrUseAfterDestroy))
			Expect(acc.Resize(10, 10)).To(MatchError(dynamo.ErrUseAfterDestroy))
			Expect(acc.Render(nil, 3, nil)).To(MatchError(dynamo.ErrUseAfterDestroy))
		})

		It("refuses a second destroy", func() {
			Expect(acc.Destroy()).To(MatchError(dynamo.ErrUseAfterDestroy))
		})
	})
})

var _ = Describe("Init", func() {
	It("surfaces a missing drawing surface", func() {
		acc, err := render.Init(render.RasterProvider{MaxPixels: 10}, 100, 100)
		Expect(err).To(MatchError(dynamo.ErrResourceUnavailable))
		Expect(acc).To(BeNil())
	})
})

var _ = Describe("FieldView", func() {
	It("traces ten bands of a potential well", func() {
		fv, err := render.NewFieldView(render.RasterProvider{Ratio: 1}, 160, 160)
		Expect(err).NotTo(HaveOccurred())

		well := func(x, y float64) float64 { return x*x + y*y }
		Expect(fv.Render([]dynamo.Vec2{{X: 0.5, Y: 0.5}}, well, 30)).To(Succeed())

		set := fv.Contours()
		Expect(set).To(HaveLen(10))
		for _, c := range set {
			Expect(c.Level).To(BeNumerically(">=", 0))
			Expect(c.Level).To(BeNumerically("<=", 9))
		}

		Expect(fv.Destroy()).To(Succeed())
		Expect(fv.Render(nil, well, 30)).To(MatchError(dynamo.ErrUseAfterDestroy))
	})
})
