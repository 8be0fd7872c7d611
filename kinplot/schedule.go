/*
 * schedule.go, part of kinope.
 *
 * Copyright 2021 The kinope developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package kinplot renders diagnostic plots of a tempering schedule: the
//effective-temperature profile and the scale factors as functions of the
//lambda control parameter.
package kinplot

import (
	"fmt"
	"image/color"

	"github.com/dominicrufa/kinope/protocol"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
}

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "lambda"
	p.Y.Label.Text = ylabel
	//lambda always spans the unit interval
	p.X.Min = 0
	p.X.Max = 1
	p.Add(plotter.NewGrid())
	return p
}

//TemperaturePlot saves a PNG named plotname.png with the effective
//temperature T(lambda) of the schedule sampled at the given number of
//points.
func TemperaturePlot(s *protocol.Schedule, points int, title, plotname string) error {
	if points < 2 {
		return fmt.Errorf("kinplot: need at least 2 points to plot, got %d", points)
	}
	p := basicPlot(title, "T / K")
	pts := make(plotter.XYs, points)
	for i := range pts {
		lambda := float64(i) / float64(points-1)
		pts[i].X = lambda
		pts[i].Y = s.Temperature(lambda)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = palette[0]
	p.Add(line)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}

//ScaleFactorPlot saves a PNG named plotname.png with every scale factor of
//the schedule sampled at the given number of points, evaluated through the
//same expressions the simulation engine would consume.
func ScaleFactorPlot(s *protocol.Schedule, points int, title, plotname string) error {
	if points < 2 {
		return fmt.Errorf("kinplot: need at least 2 points to plot, got %d", points)
	}
	p := basicPlot(title, "scale factor")
	for key, name := range s.Names() {
		pts := make(plotter.XYs, points)
		for i := range pts {
			lambda := float64(i) / float64(points-1)
			v, err := s.Eval(name, lambda)
			if err != nil {
				return err
			}
			pts[i].X = lambda
			pts[i].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = palette[key%len(palette)]
		p.Add(line)
		p.Legend.Add(name, line)
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}
