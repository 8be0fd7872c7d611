/*
 * tempering_test.go, part of kinope.
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

package tempering_test

import (
	"io"
	"testing"

	"github.com/dominicrufa/kinope"
	"github.com/dominicrufa/kinope/tempering"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//soluteRegion selects the 5-atom "solute" molecule of the test system; the
//three waters behind it are the solvent.
var soluteRegion = []int{0, 1, 2, 3, 4}

//makeTestSystem builds a small methanol-like molecule followed by three
//flexible waters: 14 particles, bonded terms of every kind, a NoCutoff
//nonbonded force with exceptions of every category, and periodic box
//vectors.
func makeTestSystem() *kinope.System {
	s := kinope.NewSystem()
	for _, m := range []float64{12.011, 12.011, 15.999, 1.008, 1.008} {
		s.AddParticle(m)
	}
	for w := 0; w < 3; w++ {
		s.AddParticle(15.999)
		s.AddParticle(1.008)
		s.AddParticle(1.008)
	}

	bonds := &kinope.HarmonicBondForce{Bonds: []kinope.Bond{
		{P1: 0, P2: 1, Length: 0.1529, K: 224262.4},
		{P1: 1, P2: 2, Length: 0.1410, K: 267776.0},
		{P1: 2, P2: 3, Length: 0.0945, K: 462750.4},
		{P1: 0, P2: 4, Length: 0.1090, K: 284512.0},
	}}
	angles := &kinope.HarmonicAngleForce{Angles: []kinope.Angle{
		{P1: 0, P2: 1, P3: 2, Theta0: 1.911, K: 418.4},
		{P1: 1, P2: 2, P3: 3, Theta0: 1.894, K: 460.24},
		{P1: 4, P2: 0, P3: 1, Theta0: 1.878, K: 313.8},
	}}
	torsions := &kinope.PeriodicTorsionForce{Torsions: []kinope.Torsion{
		{P1: 4, P2: 0, P3: 1, P4: 2, Periodicity: 3, Phase: 0, K: 0.6508},
		{P1: 0, P2: 1, P3: 2, P4: 3, Periodicity: 3, Phase: 0, K: 1.8828},
	}}
	for w := 0; w < 3; w++ {
		o := 5 + 3*w
		bonds.Bonds = append(bonds.Bonds,
			kinope.Bond{P1: o, P2: o + 1, Length: 0.09572, K: 462750.4},
			kinope.Bond{P1: o, P2: o + 2, Length: 0.09572, K: 462750.4},
		)
		angles.Angles = append(angles.Angles,
			kinope.Angle{P1: o + 1, P2: o, P3: o + 2, Theta0: 1.82421813, K: 836.8})
	}

	nb := &kinope.NonbondedForce{
		Method:                  kinope.NoCutoff,
		UseDispersionCorrection: true,
	}
	charges := []float64{-0.18, 0.145, -0.683, 0.418, 0.06}
	sigmas := []float64{0.350, 0.350, 0.312, 0.0, 0.250}
	epsilons := []float64{0.276144, 0.276144, 0.711280, 0.0, 0.125520}
	for i := range charges {
		nb.Particles = append(nb.Particles, kinope.NonbondedParticle{
			Charge: charges[i], Sigma: sigmas[i], Epsilon: epsilons[i]})
	}
	for w := 0; w < 3; w++ {
		nb.Particles = append(nb.Particles,
			kinope.NonbondedParticle{Charge: -0.834, Sigma: 0.315057, Epsilon: 0.635968},
			kinope.NonbondedParticle{Charge: 0.417},
			kinope.NonbondedParticle{Charge: 0.417},
		)
	}
	//exclusions for directly bonded solute pairs
	nb.Exceptions = append(nb.Exceptions,
		kinope.NonbondedException{P1: 0, P2: 1},
		kinope.NonbondedException{P1: 1, P2: 2},
		kinope.NonbondedException{P1: 2, P2: 3},
		kinope.NonbondedException{P1: 0, P2: 4},
		kinope.NonbondedException{P1: 0, P2: 2},
		kinope.NonbondedException{P1: 1, P2: 3},
		kinope.NonbondedException{P1: 1, P2: 4},
		kinope.NonbondedException{P1: 2, P2: 4},
		//a 1-4 pair with scaled-down interaction
		kinope.NonbondedException{P1: 4, P2: 3, ChargeProd: 0.0209, Sigma: 0.125, Epsilon: 0.0747},
		//an artificial solute-solvent override to exercise the inter category
		kinope.NonbondedException{P1: 4, P2: 5, ChargeProd: -0.0417, Sigma: 0.28, Epsilon: 0.28},
	)
	//intra-water exclusions
	for w := 0; w < 3; w++ {
		o := 5 + 3*w
		nb.Exceptions = append(nb.Exceptions,
			kinope.NonbondedException{P1: o, P2: o + 1},
			kinope.NonbondedException{P1: o, P2: o + 2},
			kinope.NonbondedException{P1: o + 1, P2: o + 2},
		)
	}

	s.AddForce(bonds)
	s.AddForce(angles)
	s.AddForce(torsions)
	s.AddForce(nb)
	s.AddConstraint(5, 6, 0.09572)
	s.AddConstraint(5, 7, 0.09572)
	if err := s.SetBoxVectors(mat.NewDense(3, 3, []float64{
		2.5, 0, 0,
		0, 2.5, 0,
		0, 0, 2.5,
	})); err != nil {
		panic(err)
	}
	return s
}

func quietFactory(t *testing.T, sys *kinope.System, solute []int, disp bool) *tempering.Factory {
	t.Helper()
	f, err := tempering.New(sys, solute, disp)
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)
	f.Log = log
	return f
}

func forcesByKind(sys *kinope.System) map[kinope.ForceKind]kinope.Force {
	m := make(map[kinope.ForceKind]kinope.Force)
	for _, f := range sys.Forces() {
		m[f.Kind()] = f
	}
	return m
}

func TestTemperRoundTripBondedTerms(t *testing.T) {
	og := makeTestSystem()
	f := quietFactory(t, og, soluteRegion, false)
	out, err := f.Assemble()
	require.NoError(t, err)

	forces := forcesByKind(out)
	ogForces := forcesByKind(og)

	bonds := forces[kinope.ScaledBond].(*tempering.ScaledBondForce)
	ogBonds := ogForces[kinope.HarmonicBond].(*kinope.HarmonicBondForce)
	require.Len(t, bonds.Bonds, len(ogBonds.Bonds))
	for i, b := range bonds.Bonds {
		o := ogBonds.Bonds[i]
		assert.Equal(t, o.P1, b.P1)
		assert.Equal(t, o.P2, b.P2)
		assert.Equal(t, o.Length, b.Length)
		assert.Equal(t, o.K, b.K)
	}
	//the first 4 bonds are intra-solute, the water bonds are solvent
	for i := 0; i < 4; i++ {
		assert.Equal(t, tempering.SoluteOnly, bonds.Bonds[i].Category)
	}
	for i := 4; i < len(bonds.Bonds); i++ {
		assert.Equal(t, tempering.SolventOnly, bonds.Bonds[i].Category)
	}

	angles := forces[kinope.ScaledAngle].(*tempering.ScaledAngleForce)
	ogAngles := ogForces[kinope.HarmonicAngle].(*kinope.HarmonicAngleForce)
	require.Len(t, angles.Angles, len(ogAngles.Angles))
	for i, a := range angles.Angles {
		o := ogAngles.Angles[i]
		assert.Equal(t, [3]int{o.P1, o.P2, o.P3}, [3]int{a.P1, a.P2, a.P3})
		assert.Equal(t, o.Theta0, a.Theta0)
		assert.Equal(t, o.K, a.K)
	}

	torsions := forces[kinope.ScaledTorsion].(*tempering.ScaledTorsionForce)
	ogTorsions := ogForces[kinope.PeriodicTorsion].(*kinope.PeriodicTorsionForce)
	require.Len(t, torsions.Torsions, len(ogTorsions.Torsions))
	for i, tt := range torsions.Torsions {
		o := ogTorsions.Torsions[i]
		assert.Equal(t, o.Periodicity, tt.Periodicity)
		assert.Equal(t, o.Phase, tt.Phase)
		assert.Equal(t, o.K, tt.K)
		assert.Equal(t, tempering.SoluteOnly, tt.Category)
	}
}

func TestTemperNonbondedRoundTrip(t *testing.T) {
	og := makeTestSystem()
	out, err := tempering.Temper(og, soluteRegion, false)
	require.NoError(t, err)

	nb := forcesByKind(out)[kinope.ScaledNonbonded].(*tempering.ScaledNonbondedForce)
	ogNB := forcesByKind(og)[kinope.Nonbonded].(*kinope.NonbondedForce)

	//base parameters are verbatim copies
	assert.Equal(t, ogNB.Particles, nb.Particles)
	assert.Equal(t, ogNB.Exceptions, nb.Exceptions)
}

func TestTemperParticleOffsets(t *testing.T) {
	og := makeTestSystem()
	out, err := tempering.Temper(og, soluteRegion, false)
	require.NoError(t, err)
	nb := forcesByKind(out)[kinope.ScaledNonbonded].(*tempering.ScaledNonbondedForce)

	//two offsets per solute particle, none for solvent
	require.Len(t, nb.ParticleOffsets, 2*len(soluteRegion))
	byParticle := make(map[int][]tempering.ParticleOffset)
	for _, o := range nb.ParticleOffsets {
		byParticle[o.Particle] = append(byParticle[o.Particle], o)
	}
	for _, i := range soluteRegion {
		offs := byParticle[i]
		require.Len(t, offs, 2, "particle %d", i)
		p := nb.Particles[i]
		elec, steric := offs[0], offs[1]
		assert.Equal(t, tempering.ElectrostaticScale, elec.Parameter)
		assert.Equal(t, p.Charge, elec.Charge)
		assert.Zero(t, elec.Sigma)
		assert.Zero(t, elec.Epsilon)
		assert.Equal(t, tempering.StericScale, steric.Parameter)
		assert.Zero(t, steric.Charge)
		assert.Equal(t, p.Sigma, steric.Sigma)
		assert.Equal(t, p.Epsilon, steric.Epsilon)
	}
	for i := len(soluteRegion); i < og.Len(); i++ {
		assert.Empty(t, byParticle[i], "solvent particle %d must not be scaled", i)
	}
}

func TestTemperExceptionOffsets(t *testing.T) {
	og := makeTestSystem()
	out, err := tempering.Temper(og, soluteRegion, false)
	require.NoError(t, err)
	nb := forcesByKind(out)[kinope.ScaledNonbonded].(*tempering.ScaledNonbondedForce)

	byException := make(map[int][]tempering.ExceptionOffset)
	for _, o := range nb.ExceptionOffsets {
		byException[o.Exception] = append(byException[o.Exception], o)
	}
	for idx, x := range nb.Exceptions {
		offs := byException[idx]
		switch {
		case x.P1 <= 4 && x.P2 <= 4: //solute pair
			require.Len(t, offs, 1, "exception %d", idx)
			assert.Equal(t, tempering.StericScale, offs[0].Parameter)
			assert.Zero(t, offs[0].ChargeProd)
			assert.Equal(t, x.Sigma, offs[0].Sigma)
			assert.Equal(t, x.Epsilon, offs[0].Epsilon)
		case x.P1 >= 5 && x.P2 >= 5: //solvent pair
			assert.Empty(t, offs, "exception %d", idx)
		default: //inter pair
			require.Len(t, offs, 1, "exception %d", idx)
			assert.Equal(t, tempering.ElectrostaticScale, offs[0].Parameter)
			assert.Equal(t, x.ChargeProd, offs[0].ChargeProd)
			assert.Zero(t, offs[0].Sigma)
			assert.Zero(t, offs[0].Epsilon)
		}
	}
}

func TestTemperNonbondedSettings(t *testing.T) {
	og := makeTestSystem()
	ogNB := forcesByKind(og)[kinope.Nonbonded].(*kinope.NonbondedForce)
	ogNB.Method = kinope.PME
	ogNB.CutoffDistance = 1.0
	ogNB.ReactionFieldDielectric = 78.3
	ogNB.UseSwitchingFunction = true
	ogNB.SwitchingDistance = 0.9
	ogNB.EwaldErrorTolerance = 5e-4
	ogNB.PME = kinope.PMEParameters{Alpha: 3.1, NX: 32, NY: 32, NZ: 32}

	out, err := tempering.Temper(og, soluteRegion, true)
	require.NoError(t, err)
	nb := forcesByKind(out)[kinope.ScaledNonbonded].(*tempering.ScaledNonbondedForce)
	assert.Equal(t, kinope.PME, nb.Method)
	assert.Equal(t, 1.0, nb.CutoffDistance)
	assert.Equal(t, 78.3, nb.ReactionFieldDielectric)
	assert.True(t, nb.UseSwitchingFunction)
	assert.Equal(t, 0.9, nb.SwitchingDistance)
	assert.Equal(t, 5e-4, nb.EwaldErrorTolerance)
	assert.Equal(t, ogNB.PME, nb.PME)
}

func TestTemperNonbondedSettingsNoCutoff(t *testing.T) {
	og := makeTestSystem()
	ogNB := forcesByKind(og)[kinope.Nonbonded].(*kinope.NonbondedForce)
	//junk in fields the NoCutoff method does not use must not leak through
	ogNB.CutoffDistance = 1.0
	ogNB.ReactionFieldDielectric = 78.3
	ogNB.EwaldErrorTolerance = 5e-4

	out, err := tempering.Temper(og, soluteRegion, false)
	require.NoError(t, err)
	nb := forcesByKind(out)[kinope.ScaledNonbonded].(*tempering.ScaledNonbondedForce)
	assert.Equal(t, kinope.NoCutoff, nb.Method)
	assert.Zero(t, nb.CutoffDistance)
	assert.Zero(t, nb.ReactionFieldDielectric)
	assert.Zero(t, nb.EwaldErrorTolerance)
}

func TestDispersionCorrectionOverride(t *testing.T) {
	cases := []struct {
		original, flag, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false}, //the flag can never force the correction on
		{false, false, false},
	}
	for _, c := range cases {
		og := makeTestSystem()
		forcesByKind(og)[kinope.Nonbonded].(*kinope.NonbondedForce).UseDispersionCorrection = c.original
		out, err := tempering.Temper(og, soluteRegion, c.flag)
		require.NoError(t, err)
		nb := forcesByKind(out)[kinope.ScaledNonbonded].(*tempering.ScaledNonbondedForce)
		assert.Equal(t, c.want, nb.UseDispersionCorrection,
			"original=%v flag=%v", c.original, c.flag)
	}
}

func TestTemperCopiesParticlesConstraintsBoxBarostat(t *testing.T) {
	og := makeTestSystem()
	baro := &kinope.MonteCarloBarostat{Pressure: 1.01325, Temperature: 300, Frequency: 50}
	og.AddForce(baro)

	out, err := tempering.Temper(og, soluteRegion, false)
	require.NoError(t, err)

	require.Equal(t, og.Len(), out.Len())
	for i := 0; i < og.Len(); i++ {
		assert.Equal(t, og.Mass(i), out.Mass(i), "particle %d", i)
	}
	assert.Equal(t, og.Constraints(), out.Constraints())
	assert.Equal(t, og.BoxVectors().RawMatrix().Data, out.BoxVectors().RawMatrix().Data)

	outBaro, ok := forcesByKind(out)[kinope.Barostat].(*kinope.MonteCarloBarostat)
	require.True(t, ok, "the barostat must be carried over")
	assert.Equal(t, *baro, *outBaro)
	baro.Pressure = 99 //the copy must be independent of the original
	assert.Equal(t, 1.01325, outBaro.Pressure)
}

func TestTemperWithoutBarostat(t *testing.T) {
	out, err := tempering.Temper(makeTestSystem(), soluteRegion, false)
	require.NoError(t, err)
	_, ok := forcesByKind(out)[kinope.Barostat]
	assert.False(t, ok)
}

func TestTemperGlobalParameters(t *testing.T) {
	out, err := tempering.Temper(makeTestSystem(), soluteRegion, false)
	require.NoError(t, err)
	want := []kinope.GlobalParameter{
		{Name: tempering.SoluteScale, DefaultValue: 1.0},
		{Name: tempering.InterScale, DefaultValue: 1.0},
		{Name: tempering.ElectrostaticScale, DefaultValue: 0.0},
		{Name: tempering.StericScale, DefaultValue: 0.0},
	}
	assert.Equal(t, want, out.GlobalParameters())
}

func TestTemperInvalidRegion(t *testing.T) {
	og := makeTestSystem()
	_, err := tempering.Temper(og, []int{0, 1, og.Len()}, false)
	require.Error(t, err)
	var terr *tempering.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, tempering.InvalidRegion, terr.Kind())
}

type customForce struct{}

func (f *customForce) Kind() kinope.ForceKind { return kinope.ForceKind(42) }

func TestTemperUnsupportedForceKind(t *testing.T) {
	og := makeTestSystem()
	og.AddForce(&customForce{})
	_, err := tempering.Temper(og, soluteRegion, false)
	require.Error(t, err)
	var terr *tempering.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, tempering.UnsupportedForceKind, terr.Kind())
	assert.Contains(t, err.Error(), "UnknownForce")
}

func TestTemperedSystemCannotBeRetempered(t *testing.T) {
	out, err := tempering.Temper(makeTestSystem(), soluteRegion, false)
	require.NoError(t, err)
	_, err = tempering.Temper(out, soluteRegion, false)
	require.Error(t, err)
	var terr *tempering.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, tempering.UnsupportedForceKind, terr.Kind())
	assert.Contains(t, err.Error(), "ScaledBondForce")
}

func TestFactoryAccessors(t *testing.T) {
	og := makeTestSystem()
	f := quietFactory(t, og, soluteRegion, false)
	assert.Nil(t, f.System())
	assert.Nil(t, f.GlobalParameterNames())
	assert.Same(t, og, f.Original())
	assert.Equal(t, soluteRegion, f.Partition().Solute())

	out, err := f.Assemble()
	require.NoError(t, err)
	assert.Same(t, out, f.System())
	again, err := f.Assemble()
	require.NoError(t, err)
	assert.Same(t, out, again, "Assemble must be idempotent")
	assert.Equal(t, []string{
		tempering.SoluteScale,
		tempering.InterScale,
		tempering.ElectrostaticScale,
		tempering.StericScale,
	}, f.GlobalParameterNames())
}

func TestEnergyExpressions(t *testing.T) {
	assert.Equal(t,
		"(K/2)*(r-length)^2;K = k*scale_factor;"+tempering.ScalingExpression(),
		tempering.BondEnergyExpression())
	assert.Equal(t,
		"(K/2)*(theta-theta0)^2;K = k*scale_factor;"+tempering.ScalingExpression(),
		tempering.AngleEnergyExpression())
	assert.Equal(t,
		"K*(1+cos(periodicity*theta-phase));K = k*scale_factor;"+tempering.ScalingExpression(),
		tempering.TorsionEnergyExpression())
	assert.Contains(t, tempering.ScalingExpression(), "solvent_scale = 1.")
	assert.Contains(t, tempering.ScalingExpression(), "delta(identifier)")
	assert.Contains(t, tempering.ScalingExpression(), "delta(1-identifier)")
	assert.Contains(t, tempering.ScalingExpression(), "delta(2-identifier)")
}
