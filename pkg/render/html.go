package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

// viridis stops used by the visual map.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// WriteHTML writes an interactive heat map of m as a standalone HTML page.
func WriteHTML(w io.Writer, m *model.Model, renderOpts ...Option) error {
	o := newOptions(renderOpts)
	vel, err := velocityOf(m)
	if err != nil {
		return err
	}

	nx, ny := vel.Dims()
	xs := make([]int, 0, nx/o.stride+1)
	for ix := 0; ix < nx; ix += o.stride {
		xs = append(xs, ix)
	}
	ys := make([]int, 0, ny/o.stride+1)
	for iy := 0; iy < ny; iy += o.stride {
		ys = append(ys, iy)
	}

	data := make([]opts.HeatMapData, 0, len(xs)*len(ys))
	for i, ix := range xs {
		for j, iy := range ys {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, vel.At(ix, iy)}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: o.title, Subtitle: subtitle(m)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xs, Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys, Name: "depth", Inverse: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(mat.Min(vel)),
			Max:        float32(mat.Max(vel)),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.AddSeries("velocity", data)

	if err := hm.Render(w); err != nil {
		return errors.Wrap(err, "unable to render heat map")
	}

	return nil
}
