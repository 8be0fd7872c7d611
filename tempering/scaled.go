/*
 * scaled.go, part of kinope.
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

package tempering

import (
	"github.com/dominicrufa/kinope"
)

//The names of the global scale factors a rewritten System declares. The
//bonded factors multiply term strengths directly and default to 1; the
//nonbonded factors drive additive parameter offsets and default to 0. At
//those defaults the rewritten System reproduces the original potential
//exactly.
const (
	SoluteScale        = "solute_scale"
	InterScale         = "inter_scale"
	StericScale        = "steric_scale"
	ElectrostaticScale = "electrostatic_scale"
)

func bondedGlobals() []kinope.GlobalParameter {
	return []kinope.GlobalParameter{
		{Name: SoluteScale, DefaultValue: 1.0},
		{Name: InterScale, DefaultValue: 1.0},
	}
}

func nonbondedGlobals() []kinope.GlobalParameter {
	return []kinope.GlobalParameter{
		{Name: ElectrostaticScale, DefaultValue: 0.0},
		{Name: StericScale, DefaultValue: 0.0},
	}
}

//ScalingExpression returns the selection block shared by all bonded energy
//expressions. It picks the scale factor matching a term's stored category
//identifier; the solvent factor is pinned to 1 and is deliberately not a
//control knob.
func ScalingExpression() string {
	return "scale_factor = solute_scale*_is_solute + solvent_scale*_is_solvent + inter_scale*_is_inter;" +
		"solvent_scale = 1.;" +
		"_is_solute = delta(identifier); _is_solvent = delta(1-identifier); _is_inter = delta(2-identifier);"
}

//BondEnergyExpression returns the energy expression of a ScaledBondForce, in
//the engine's custom-force expression language.
func BondEnergyExpression() string {
	return "(K/2)*(r-length)^2;" +
		"K = k*scale_factor;" +
		ScalingExpression()
}

//AngleEnergyExpression returns the energy expression of a ScaledAngleForce.
func AngleEnergyExpression() string {
	return "(K/2)*(theta-theta0)^2;" +
		"K = k*scale_factor;" +
		ScalingExpression()
}

//TorsionEnergyExpression returns the energy expression of a
//ScaledTorsionForce.
func TorsionEnergyExpression() string {
	return "K*(1+cos(periodicity*theta-phase));" +
		"K = k*scale_factor;" +
		ScalingExpression()
}

//ScaledBond is a harmonic bond term tagged with its region category.
type ScaledBond struct {
	P1, P2   int
	Length   float64
	K        float64
	Category Category
}

//ScaledBondForce holds the rewritten harmonic bond terms of a tempered
//System. A single container holds the terms of every category; each term's
//Category tag selects its scale factor inside the shared energy expression.
type ScaledBondForce struct {
	Bonds []ScaledBond
}

func (f *ScaledBondForce) Kind() kinope.ForceKind { return kinope.ScaledBond }

//EnergyExpression returns the per-term energy expression for the engine's
//expression evaluator.
func (f *ScaledBondForce) EnergyExpression() string { return BondEnergyExpression() }

//GlobalParameters declares the bonded scale factors, defaulted so the force
//reproduces the unscaled energies.
func (f *ScaledBondForce) GlobalParameters() []kinope.GlobalParameter { return bondedGlobals() }

//ScaledAngle is a harmonic angle term tagged with its region category.
type ScaledAngle struct {
	P1, P2, P3 int
	Theta0     float64
	K          float64
	Category   Category
}

//ScaledAngleForce holds the rewritten harmonic angle terms of a tempered
//System.
type ScaledAngleForce struct {
	Angles []ScaledAngle
}

func (f *ScaledAngleForce) Kind() kinope.ForceKind { return kinope.ScaledAngle }

func (f *ScaledAngleForce) EnergyExpression() string { return AngleEnergyExpression() }

func (f *ScaledAngleForce) GlobalParameters() []kinope.GlobalParameter { return bondedGlobals() }

//ScaledTorsion is a periodic torsion term tagged with its region category.
type ScaledTorsion struct {
	P1, P2, P3, P4 int
	Periodicity    int
	Phase          float64
	K              float64
	Category       Category
}

//ScaledTorsionForce holds the rewritten periodic torsion terms of a tempered
//System.
type ScaledTorsionForce struct {
	Torsions []ScaledTorsion
}

func (f *ScaledTorsionForce) Kind() kinope.ForceKind { return kinope.ScaledTorsion }

func (f *ScaledTorsionForce) EnergyExpression() string { return TorsionEnergyExpression() }

func (f *ScaledTorsionForce) GlobalParameters() []kinope.GlobalParameter { return bondedGlobals() }

//ParticleOffset adds Parameter*(Charge, Sigma, Epsilon) on top of the base
//nonbonded parameters of particle Particle, where Parameter names a global
//scale factor.
type ParticleOffset struct {
	Parameter string
	Particle  int
	Charge    float64
	Sigma     float64
	Epsilon   float64
}

//ExceptionOffset adds Parameter*(ChargeProd, Sigma, Epsilon) on top of the
//base parameters of the exception at index Exception.
type ExceptionOffset struct {
	Parameter  string
	Exception  int
	ChargeProd float64
	Sigma      float64
	Epsilon    float64
}

//ScaledNonbondedForce is a NonbondedForce whose solute-involving parameters
//can be driven away from their base values through global scale factors. The
//base Particles and Exceptions are verbatim copies of the original force;
//all of the tempering lives in the offsets.
type ScaledNonbondedForce struct {
	kinope.NonbondedForce
	ParticleOffsets  []ParticleOffset
	ExceptionOffsets []ExceptionOffset
}

func (f *ScaledNonbondedForce) Kind() kinope.ForceKind { return kinope.ScaledNonbonded }

//GlobalParameters declares the nonbonded offset scale factors, defaulted to
//zero so the base parameters are the effective ones.
func (f *ScaledNonbondedForce) GlobalParameters() []kinope.GlobalParameter {
	return nonbondedGlobals()
}
