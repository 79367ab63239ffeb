package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// points converts a sieve series and passing map into plot coordinates,
// opening in mm on X. Unparseable or unmeasured sieves are skipped.
func points(order []string, passing map[string]float64) plotter.XYs {
	var pts plotter.XYs
	for _, sieve := range order {
		p, ok := passing[sieve]
		if !ok {
			continue
		}
		mm, err := matcalc.NominalSizeMM(sieve)
		if err != nil {
			continue
		}
		pts = append(pts, plotter.XY{X: mm, Y: p})
	}
	return pts
}

func dashedLine(pts plotter.XYs, c color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = c
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return line, nil
}

// ExportCurve plots one or more grading curves on a log sieve-opening axis,
// with the envelope band drawn dashed behind them, and saves the figure.
// The extension selects the format; anything unrecognized falls back to PNG.
func ExportCurve(curves []Curve, env *Envelope, filename string) error {
	p := plot.New()
	p.Title.Text = "Límites Granulométricos"
	p.X.Label.Text = "Abertura del cedazo (mm)"
	p.Y.Label.Text = "Porcentaje acumulado que pasa (%)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{}
	p.Y.Min, p.Y.Max = 0, 100
	p.Add(plotter.NewGrid())

	if env != nil {
		maxLine, err := dashedLine(points(env.Sieves, env.Max), color.RGBA{R: 200, A: 255})
		if err != nil {
			return err
		}
		minLine, err := dashedLine(points(env.Sieves, env.Min), color.RGBA{R: 200, A: 255})
		if err != nil {
			return err
		}
		p.Add(maxLine, minLine)
		p.Legend.Add(env.Name, maxLine)
	}

	palette := []color.Color{
		color.RGBA{B: 180, A: 255},
		color.RGBA{G: 140, A: 255},
		color.RGBA{R: 180, G: 120, A: 255},
	}
	for i, c := range curves {
		pts := points(c.Sieves, c.Passing)
		if len(pts) == 0 {
			return fmt.Errorf("curve %q has no plottable points", c.Name)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = palette[i%len(palette)]
		p.Add(line)
		p.Legend.Add(c.Name, line)
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
