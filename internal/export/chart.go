// Package export renders episode trajectories as PNG charts.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/cartpole/internal/sim"
)

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)

	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}

func savePNG(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}

	c := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 6*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(f); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

func saveLinePlot(path, title, xlabel, ylabel string, xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return fmt.Errorf("plot data invalid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	stylePlot(p)

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	return savePNG(p, path)
}

// SaveCharts writes position and angle trajectories of one episode as PNG
// files under outDir.
func SaveCharts(outDir string, timeDelta float64, result *sim.Result) error {
	n := len(result.States)
	if n == 0 {
		return fmt.Errorf("empty trajectory")
	}

	times := make([]float64, n)
	xs := make([]float64, n)
	angles := make([]float64, n)
	for i, s := range result.States {
		times[i] = float64(i) * timeDelta
		xs[i] = s.X
		angles[i] = s.Angle
	}

	if err := saveLinePlot(filepath.Join(outDir, "cart_position.png"),
		"Cart Position x(t)", "time (s)", "x (m)", times, xs); err != nil {
		return err
	}
	if err := saveLinePlot(filepath.Join(outDir, "pole_angle.png"),
		"Pole Angle (0 = upright)", "time (s)", "angle (rad)", times, angles); err != nil {
		return err
	}

	if len(result.Actions) > 0 {
		dirTimes := make([]float64, len(result.Actions))
		dirs := make([]float64, len(result.Actions))
		for i, a := range result.Actions {
			dirTimes[i] = float64(i) * timeDelta
			dirs[i] = a.Dir
		}
		if err := saveLinePlot(filepath.Join(outDir, "push_direction.png"),
			"Push Direction", "time (s)", "dir", dirTimes, dirs); err != nil {
			return err
		}
	}

	return nil
}
