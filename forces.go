/*
 * forces.go, part of kinope.
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

package kinope

//ForceKind names a force container type. It is used for messages and errors;
//dispatch over forces is done by type-switching on the concrete types.
type ForceKind int

const (
	HarmonicBond ForceKind = iota
	HarmonicAngle
	PeriodicTorsion
	Nonbonded
	Barostat
	ScaledBond
	ScaledAngle
	ScaledTorsion
	ScaledNonbonded
)

func (k ForceKind) String() string {
	switch k {
	case HarmonicBond:
		return "HarmonicBondForce"
	case HarmonicAngle:
		return "HarmonicAngleForce"
	case PeriodicTorsion:
		return "PeriodicTorsionForce"
	case Nonbonded:
		return "NonbondedForce"
	case Barostat:
		return "MonteCarloBarostat"
	case ScaledBond:
		return "ScaledBondForce"
	case ScaledAngle:
		return "ScaledAngleForce"
	case ScaledTorsion:
		return "ScaledTorsionForce"
	case ScaledNonbonded:
		return "ScaledNonbondedForce"
	}
	return "UnknownForce"
}

//GlobalParameter declares a named, globally shared control variable with the
//value it holds until an external controller drives it.
type GlobalParameter struct {
	Name         string
	DefaultValue float64
}

//Bond is a harmonic bond term between particles P1 and P2, with equilibrium
//length Length (nm) and spring constant K (kJ/mol/nm^2).
type Bond struct {
	P1, P2 int
	Length float64
	K      float64
}

//HarmonicBondForce holds the harmonic bond terms of a System.
type HarmonicBondForce struct {
	Bonds []Bond
}

func (f *HarmonicBondForce) Kind() ForceKind { return HarmonicBond }

//Angle is a harmonic angle term over particles P1-P2-P3 (P2 the vertex), with
//equilibrium angle Theta0 (rad) and spring constant K (kJ/mol/rad^2).
type Angle struct {
	P1, P2, P3 int
	Theta0     float64
	K          float64
}

//HarmonicAngleForce holds the harmonic angle terms of a System.
type HarmonicAngleForce struct {
	Angles []Angle
}

func (f *HarmonicAngleForce) Kind() ForceKind { return HarmonicAngle }

//Torsion is a periodic torsion term over particles P1-P2-P3-P4 with the given
//periodicity, phase (rad) and barrier height K (kJ/mol).
type Torsion struct {
	P1, P2, P3, P4 int
	Periodicity    int
	Phase          float64
	K              float64
}

//PeriodicTorsionForce holds the periodic torsion terms of a System.
type PeriodicTorsionForce struct {
	Torsions []Torsion
}

func (f *PeriodicTorsionForce) Kind() ForceKind { return PeriodicTorsion }

//NonbondedMethod selects how a NonbondedForce treats cutoffs and long-range
//electrostatics.
type NonbondedMethod int

const (
	NoCutoff NonbondedMethod = iota
	CutoffNonPeriodic
	CutoffPeriodic
	Ewald
	PME
)

func (m NonbondedMethod) String() string {
	switch m {
	case NoCutoff:
		return "NoCutoff"
	case CutoffNonPeriodic:
		return "CutoffNonPeriodic"
	case CutoffPeriodic:
		return "CutoffPeriodic"
	case Ewald:
		return "Ewald"
	case PME:
		return "PME"
	}
	return "Unknown"
}

//UsesCutoff is true if the method truncates interactions at a cutoff distance.
func (m NonbondedMethod) UsesCutoff() bool { return m != NoCutoff }

//UsesLongRange is true if the method computes long-range electrostatics in
//reciprocal space and therefore carries Ewald/PME parameters.
func (m NonbondedMethod) UsesLongRange() bool { return m == Ewald || m == PME }

//NonbondedParticle holds the per-particle nonbonded parameters: partial
//charge (e), Lennard-Jones sigma (nm) and epsilon (kJ/mol).
type NonbondedParticle struct {
	Charge  float64
	Sigma   float64
	Epsilon float64
}

//NonbondedException overrides the otherwise-computed nonbonded interaction
//between the pair P1, P2 (1-4 scaling, or a full exclusion when all three
//parameters are zero).
type NonbondedException struct {
	P1, P2     int
	ChargeProd float64
	Sigma      float64
	Epsilon    float64
}

//PMEParameters are the reciprocal-space parameters of an Ewald or PME
//nonbonded method.
type PMEParameters struct {
	Alpha      float64
	NX, NY, NZ int
}

//NonbondedForce holds per-particle nonbonded parameters and their pairwise
//exceptions, plus the cutoff scheme shared by all of them. Particles is
//indexed by particle index and must have one entry per particle in the
//owning System.
type NonbondedForce struct {
	Method                  NonbondedMethod
	CutoffDistance          float64
	ReactionFieldDielectric float64
	UseSwitchingFunction    bool
	SwitchingDistance       float64
	UseDispersionCorrection bool
	EwaldErrorTolerance     float64
	PME                     PMEParameters
	Particles               []NonbondedParticle
	Exceptions              []NonbondedException
}

func (f *NonbondedForce) Kind() ForceKind { return Nonbonded }

//MonteCarloBarostat couples a System to a pressure bath. It contributes no
//potential energy; the simulation engine uses it to attempt box rescaling
//every Frequency steps.
type MonteCarloBarostat struct {
	Pressure    float64 //bar
	Temperature float64 //K
	Frequency   int
}

func (f *MonteCarloBarostat) Kind() ForceKind { return Barostat }
