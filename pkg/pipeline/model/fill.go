package model

import "gonum.org/v1/gonum/floats"

// fill writes every layer velocity between its top and bottom interface.
// Rows outside [0, ny) are skipped; cells covered by no layer keep their
// previous value.
func (m *Model) fill(velseed []LayerVelocity) {
	for ix := 0; ix < m.nx; ix++ {
		col := m.velocity.RawRowView(ix)
		for i, v := range velseed {
			iy0, iy1 := m.iface[i][ix], m.iface[i+1][ix]
			if iy1 <= iy0 {
				continue
			}
			if m.velType == Constant {
				for iy := max(iy0, 0); iy < min(iy1, m.ny); iy++ {
					col[iy] = v.Top
				}

				continue
			}
			ramp := Linspace(v.Top, v.Bottom, iy1-iy0)
			for k, vel := range ramp {
				if iy := iy0 + k; iy >= 0 && iy < m.ny {
					col[iy] = vel
				}
			}
		}
	}
	m.filled = true
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}

	return floats.Span(make([]float64, n), start, stop)
}

// LinspaceInt returns n evenly spaced values from start to stop, truncated
// toward zero.
func LinspaceInt(start, stop float64, n int) []int {
	vals := Linspace(start, stop, n)
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}

	return out
}
