// Package render draws velocity models as heat maps, either as PNG images
// through gonum/plot or as interactive HTML pages through go-echarts.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

var ErrEmptyModel = errors.New("render: model has no velocity")

const paletteSize = 256

type options struct {
	title      string
	width      vg.Length
	height     vg.Length
	interfaces bool
	stride     int
}

// Option configures a rendering.
type Option func(o *options)

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithSize sets the PNG image size.
func WithSize(width, height vg.Length) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithInterfaces overlays the layer interfaces on the PNG heat map.
func WithInterfaces(show bool) Option {
	return func(o *options) {
		o.interfaces = show
	}
}

// WithStride keeps one sample out of stride in both directions in HTML
// output.
func WithStride(stride int) Option {
	return func(o *options) {
		o.stride = max(stride, 1)
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		title:  "Velocity model",
		width:  10 * vg.Inch,
		height: 5 * vg.Inch,
		stride: 1,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// velocityGrid exposes a velocity field as a plotter.GridXYZ with x along
// columns and depth along rows.
type velocityGrid struct {
	vel      *mat.Dense
	min, max float64
}

func newVelocityGrid(vel *mat.Dense) *velocityGrid {
	g := &velocityGrid{vel: vel, min: mat.Min(vel), max: mat.Max(vel)}
	if g.max <= g.min {
		g.max = g.min + 1
	}

	return g
}

func (g *velocityGrid) Dims() (c, r int)   { return g.vel.Dims() }
func (g *velocityGrid) Z(c, r int) float64 { return g.vel.At(c, r) }
func (g *velocityGrid) X(c int) float64    { return float64(c) }
func (g *velocityGrid) Y(r int) float64    { return float64(r) }
func (g *velocityGrid) Min() float64       { return g.min }
func (g *velocityGrid) Max() float64       { return g.max }

func velocityOf(m *model.Model) (*mat.Dense, error) {
	if m == nil {
		return nil, ErrEmptyModel
	}
	if !m.Filled() {
		return m.Generate(false)
	}

	return m.Velocity(), nil
}

// Plot builds the heat map of m with depth increasing downwards.
func Plot(m *model.Model, opts ...Option) (*plot.Plot, error) {
	o := newOptions(opts)
	vel, err := velocityOf(m)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "x (samples)"
	p.Y.Label.Text = "depth (samples)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	p.Add(plotter.NewHeatMap(newVelocityGrid(vel), palette.Heat(paletteSize, 1)))

	if o.interfaces && m.HasInterface() {
		for i, row := range m.Interface() {
			pts := make(plotter.XYs, len(row))
			for ix, iy := range row {
				pts[ix] = plotter.XY{X: float64(ix), Y: float64(iy)}
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to draw interface %d", i)
			}
			line.Color = color.Black
			line.Width = vg.Points(0.5)
			p.Add(line)
		}
	}

	return p, nil
}

// WritePNG writes the heat map of m as a PNG image.
func WritePNG(w io.Writer, m *model.Model, opts ...Option) error {
	o := newOptions(opts)
	p, err := Plot(m, opts...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(o.width, o.height, "png")
	if err != nil {
		return errors.Wrap(err, "unable to create png writer")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "unable to write png")
	}

	return nil
}

// SavePNG writes the heat map of m to path.
func SavePNG(path string, m *model.Model, opts ...Option) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePNG(w, m, opts...)
	})
}

// SaveHTML writes the interactive heat map of m to path.
func SaveHTML(path string, m *model.Model, opts ...Option) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteHTML(w, m, opts...)
	})
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "unable to create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close %s", path)
		}
	}()

	return write(f)
}

func subtitle(m *model.Model) string {
	nx, ny := m.Shape()

	return fmt.Sprintf("nx=%d ny=%d layers=%d", nx, ny, m.NLayers())
}
