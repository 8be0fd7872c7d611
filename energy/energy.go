/*
 * energy.go, part of kinope.
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

/*
Package energy evaluates the potential energy of a kinope.System at a given
particle configuration. It understands both the plain force kinds and the
scaled forces the tempering package produces, resolving scale factors from
the System's global-parameter declarations plus caller overrides.

The evaluator plays the role a full simulation engine would and exists mainly
so the tempering rewrite can be regression-tested: at the default scale
factors a rewritten System must reproduce the original potential exactly. It
computes direct-space interactions only; Systems whose nonbonded force uses a
cutoff or reciprocal-space method are rejected.
*/
package energy

import (
	"fmt"
	"math"

	"github.com/dominicrufa/kinope"
	"github.com/dominicrufa/kinope/tempering"
	"gonum.org/v1/gonum/mat"
)

//Coulomb's constant 1/(4 pi eps0) in MD units (kJ mol^-1 nm e^-2).
const oneOver4PiEps0 = 138.935456

//Potential returns the potential energy (kJ/mol) of the System at the given
//configuration. coords must be an N x 3 matrix, one row per particle, in nm.
//globals overrides the global scale-factor values declared by the System's
//forces; a nil map leaves every factor at its declared default. Overriding a
//name the System does not declare is an error.
func Potential(sys *kinope.System, coords *mat.Dense, globals map[string]float64) (float64, error) {
	r, c := coords.Dims()
	if r != sys.Len() || c != 3 {
		err := new(Error)
		err.message = fmt.Sprintf("coordinates are %dx%d, want %dx3", r, c, sys.Len())
		err.Decorate("Potential")
		return 0, err
	}
	g, err := resolveGlobals(sys, globals)
	if err != nil {
		err.Decorate("Potential")
		return 0, err
	}
	total := 0.0
	for _, fc := range sys.Forces() {
		var e float64
		var ferr *Error
		switch f := fc.(type) {
		case *kinope.HarmonicBondForce:
			e = bondEnergy(f, coords)
		case *kinope.HarmonicAngleForce:
			e = angleEnergy(f, coords)
		case *kinope.PeriodicTorsionForce:
			e = torsionEnergy(f, coords)
		case *kinope.NonbondedForce:
			e, ferr = nonbondedEnergy(f, coords, nil, nil, g)
		case *kinope.MonteCarloBarostat:
			//no potential contribution
		case *tempering.ScaledBondForce:
			e = scaledBondEnergy(f, coords, g)
		case *tempering.ScaledAngleForce:
			e = scaledAngleEnergy(f, coords, g)
		case *tempering.ScaledTorsionForce:
			e = scaledTorsionEnergy(f, coords, g)
		case *tempering.ScaledNonbondedForce:
			e, ferr = nonbondedEnergy(&f.NonbondedForce, coords, f.ParticleOffsets, f.ExceptionOffsets, g)
		default:
			ferr = new(Error)
			ferr.message = fmt.Sprintf("cannot evaluate a force of kind %v", fc.Kind())
		}
		if ferr != nil {
			ferr.Decorate("Potential")
			return 0, ferr
		}
		total += e
	}
	return total, nil
}

//resolveGlobals starts from the defaults the System's forces declare and
//overlays the caller's values.
func resolveGlobals(sys *kinope.System, overrides map[string]float64) (map[string]float64, *Error) {
	g := make(map[string]float64)
	for _, p := range sys.GlobalParameters() {
		g[p.Name] = p.DefaultValue
	}
	for name, v := range overrides {
		if _, ok := g[name]; !ok {
			err := new(Error)
			err.message = fmt.Sprintf("the system declares no global parameter named %q", name)
			return nil, err
		}
		g[name] = v
	}
	return g, nil
}

func bondEnergy(f *kinope.HarmonicBondForce, coords *mat.Dense) float64 {
	e := 0.0
	for _, b := range f.Bonds {
		d := dist(coords, b.P1, b.P2) - b.Length
		e += 0.5 * b.K * d * d
	}
	return e
}

func angleEnergy(f *kinope.HarmonicAngleForce, coords *mat.Dense) float64 {
	e := 0.0
	for _, a := range f.Angles {
		d := angle(coords, a.P1, a.P2, a.P3) - a.Theta0
		e += 0.5 * a.K * d * d
	}
	return e
}

func torsionEnergy(f *kinope.PeriodicTorsionForce, coords *mat.Dense) float64 {
	e := 0.0
	for _, t := range f.Torsions {
		phi := dihedral(coords, t.P1, t.P2, t.P3, t.P4)
		e += t.K * (1 + math.Cos(float64(t.Periodicity)*phi-t.Phase))
	}
	return e
}

//bondedScale resolves the multiplicative scale factor a bonded term's
//category selects. The solvent factor is pinned to 1.
func bondedScale(c tempering.Category, g map[string]float64) float64 {
	switch c {
	case tempering.SoluteOnly:
		return g[tempering.SoluteScale]
	case tempering.Inter:
		return g[tempering.InterScale]
	}
	return 1.0
}

func scaledBondEnergy(f *tempering.ScaledBondForce, coords *mat.Dense, g map[string]float64) float64 {
	e := 0.0
	for _, b := range f.Bonds {
		d := dist(coords, b.P1, b.P2) - b.Length
		e += 0.5 * b.K * bondedScale(b.Category, g) * d * d
	}
	return e
}

func scaledAngleEnergy(f *tempering.ScaledAngleForce, coords *mat.Dense, g map[string]float64) float64 {
	e := 0.0
	for _, a := range f.Angles {
		d := angle(coords, a.P1, a.P2, a.P3) - a.Theta0
		e += 0.5 * a.K * bondedScale(a.Category, g) * d * d
	}
	return e
}

func scaledTorsionEnergy(f *tempering.ScaledTorsionForce, coords *mat.Dense, g map[string]float64) float64 {
	e := 0.0
	for _, t := range f.Torsions {
		phi := dihedral(coords, t.P1, t.P2, t.P3, t.P4)
		e += t.K * bondedScale(t.Category, g) * (1 + math.Cos(float64(t.Periodicity)*phi-t.Phase))
	}
	return e
}

//nonbondedEnergy evaluates Coulomb plus Lennard-Jones over all particle
//pairs, with excepted pairs evaluated from their exception parameters
//instead of the combination rule. Offsets, if any, are applied to the base
//parameters first, each weighted by the current value of its driving global
//parameter.
func nonbondedEnergy(f *kinope.NonbondedForce, coords *mat.Dense,
	poffs []tempering.ParticleOffset, eoffs []tempering.ExceptionOffset,
	g map[string]float64) (float64, *Error) {
	if f.Method != kinope.NoCutoff {
		err := new(Error)
		err.message = fmt.Sprintf("the evaluator only supports the NoCutoff nonbonded method, got %v", f.Method)
		return 0, err
	}
	particles := make([]kinope.NonbondedParticle, len(f.Particles))
	copy(particles, f.Particles)
	for _, o := range poffs {
		s := g[o.Parameter]
		particles[o.Particle].Charge += s * o.Charge
		particles[o.Particle].Sigma += s * o.Sigma
		particles[o.Particle].Epsilon += s * o.Epsilon
	}
	exceptions := make([]kinope.NonbondedException, len(f.Exceptions))
	copy(exceptions, f.Exceptions)
	for _, o := range eoffs {
		s := g[o.Parameter]
		exceptions[o.Exception].ChargeProd += s * o.ChargeProd
		exceptions[o.Exception].Sigma += s * o.Sigma
		exceptions[o.Exception].Epsilon += s * o.Epsilon
	}

	excepted := make(map[[2]int]bool, len(exceptions))
	for _, x := range exceptions {
		excepted[pairKey(x.P1, x.P2)] = true
	}

	e := 0.0
	n := len(particles)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if excepted[pairKey(i, j)] {
				continue
			}
			pi, pj := particles[i], particles[j]
			//Lorentz-Berthelot combination
			sigma := 0.5 * (pi.Sigma + pj.Sigma)
			epsilon := math.Sqrt(pi.Epsilon * pj.Epsilon)
			e += pairEnergy(dist(coords, i, j), pi.Charge*pj.Charge, sigma, epsilon)
		}
	}
	for _, x := range exceptions {
		e += pairEnergy(dist(coords, x.P1, x.P2), x.ChargeProd, x.Sigma, x.Epsilon)
	}
	return e, nil
}

func pairEnergy(r, chargeProd, sigma, epsilon float64) float64 {
	e := oneOver4PiEps0 * chargeProd / r
	if epsilon != 0 {
		sr := sigma / r
		sr6 := sr * sr * sr * sr * sr * sr
		e += 4 * epsilon * (sr6*sr6 - sr6)
	}
	return e
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

//Errors

//Error is the concrete error type of the energy package.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
