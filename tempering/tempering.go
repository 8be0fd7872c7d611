/*
 * tempering.go, part of kinope.
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
Package tempering rewrites a kinope.System for REST2 solute tempering: every
interaction term involving the designated solute region is replaced by an
equivalent term whose strength is multiplied (bonded terms) or offset
(nonbonded parameters) by a named global scale factor, selected by the term's
region category. With the scale factors at their declared defaults the
rewritten System reproduces the original potential exactly; driving them over
the schedule of the protocol package heats the solute while the solvent stays
cold.
*/
package tempering

import (
	"fmt"

	"github.com/dominicrufa/kinope"
	"github.com/sirupsen/logrus"
)

//Factory rewrites one original System into its REST2-tempered counterpart.
//Each Factory is single use: it validates its inputs at construction and
//builds the output System once. Factories for independent Systems are safe
//to run concurrently; the original System is only read, never mutated.
type Factory struct {
	//Log receives the diagnostic messages of the assembly. It defaults to
	//the logrus standard logger and may be replaced before Assemble is
	//called.
	Log logrus.FieldLogger

	og      *kinope.System
	out     *kinope.System
	part    *Partition
	useDisp bool
}

//Temper rewrites system for REST2 tempering of the given solute region and
//returns the rewritten System. It is shorthand for New followed by Assemble.
//useDispersionCorrection can only disable the long-range dispersion
//correction of the rewritten nonbonded force: the correction ends up enabled
//only if the original force requests it and the flag is true.
func Temper(system *kinope.System, soluteRegion []int, useDispersionCorrection bool) (*kinope.System, error) {
	f, err := New(system, soluteRegion, useDispersionCorrection)
	if err != nil {
		return nil, errDecorate(err, "Temper")
	}
	out, err := f.Assemble()
	if err != nil {
		return nil, errDecorate(err, "Temper")
	}
	return out, nil
}

//New returns a Factory for the given System and solute region. It fails with
//an InvalidRegion error if the solute region is not a subset of the System's
//particle indexes, and with an UnsupportedForceKind error if the System
//contains force kinds the rewrite does not understand.
func New(system *kinope.System, soluteRegion []int, useDispersionCorrection bool) (*Factory, error) {
	part, err := NewPartition(system.Len(), soluteRegion)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	f := &Factory{
		Log:     logrus.StandardLogger(),
		og:      system,
		part:    part,
		useDisp: useDispersionCorrection,
	}
	if err := f.validateForces(); err != nil {
		return nil, errDecorate(err, "New")
	}
	return f, nil
}

//validateForces rejects any force kind outside the five the rewrite knows.
//This is the one exhaustive dispatch over input forces; the per-kind rewrite
//functions below can then assume their input.
func (F *Factory) validateForces() error {
	unknown := make([]string, 0)
	for _, fc := range F.og.Forces() {
		switch fc.(type) {
		case *kinope.HarmonicBondForce, *kinope.HarmonicAngleForce, *kinope.PeriodicTorsionForce,
			*kinope.NonbondedForce, *kinope.MonteCarloBarostat:
		default:
			unknown = append(unknown, fc.Kind().String())
		}
	}
	if len(unknown) > 0 {
		err := new(Error)
		err.kind = UnsupportedForceKind
		err.message = fmt.Sprintf("unknown forces %v encountered in the system", unknown)
		return err
	}
	return nil
}

//Assemble builds and returns the rewritten System. Calling it again returns
//the same System; the output is not mutated after assembly.
func (F *Factory) Assemble() (*kinope.System, error) {
	if F.out != nil {
		return F.out, nil
	}
	F.Log.Debugf("solute region: %v", F.part.Solute())
	F.Log.Debugf("solvent region: %v", F.part.Solvent())
	F.Log.Info("No unknown forces.")

	out := kinope.NewSystem()
	for i := 0; i < F.og.Len(); i++ {
		out.AddParticle(F.og.Mass(i))
	}
	for _, c := range F.og.Constraints() {
		out.AddConstraint(c.P1, c.P2, c.Distance)
	}

	if baro := F.findBarostat(); baro != nil {
		b := *baro
		out.AddForce(&b)
		F.Log.Info("Added MonteCarloBarostat.")
	} else {
		F.Log.Info("No MonteCarloBarostat added.")
	}

	box := F.og.BoxVectors()
	if err := out.SetBoxVectors(box); err != nil {
		return nil, errDecorate(err, "Assemble")
	}
	if box != nil {
		F.Log.Infof("default periodic box vectors added to the rewritten system: %v", box.RawMatrix().Data)
	}

	for _, fc := range F.og.Forces() {
		switch og := fc.(type) {
		case *kinope.HarmonicBondForce:
			out.AddForce(F.rewriteBonds(og))
		case *kinope.HarmonicAngleForce:
			out.AddForce(F.rewriteAngles(og))
		case *kinope.PeriodicTorsionForce:
			out.AddForce(F.rewriteTorsions(og))
		case *kinope.NonbondedForce:
			out.AddForce(F.rewriteNonbonded(og))
		}
	}

	F.out = out
	return out, nil
}

//System returns the rewritten System, or nil if Assemble has not run yet.
func (F *Factory) System() *kinope.System {
	return F.out
}

//Original returns the System the Factory was built from.
func (F *Factory) Original() *kinope.System {
	return F.og
}

//Partition returns the solute/solvent partition of the Factory.
func (F *Factory) Partition() *Partition {
	return F.part
}

//GlobalParameterNames returns the names of the global scale factors the
//rewritten System declares, in declaration order. It is empty before
//Assemble has run.
func (F *Factory) GlobalParameterNames() []string {
	if F.out == nil {
		return nil
	}
	params := F.out.GlobalParameters()
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func (F *Factory) findBarostat() *kinope.MonteCarloBarostat {
	for _, fc := range F.og.Forces() {
		if b, ok := fc.(*kinope.MonteCarloBarostat); ok {
			return b
		}
	}
	return nil
}

//The term rewriters. Each copies the original physical parameters verbatim
//and tags the term with its region category; the scaling itself happens in
//the shared energy expression (bonded) or in the parameter offsets
//(nonbonded).

func (F *Factory) rewriteBonds(og *kinope.HarmonicBondForce) *ScaledBondForce {
	out := &ScaledBondForce{Bonds: make([]ScaledBond, 0, len(og.Bonds))}
	for _, b := range og.Bonds {
		out.Bonds = append(out.Bonds, ScaledBond{
			P1:       b.P1,
			P2:       b.P2,
			Length:   b.Length,
			K:        b.K,
			Category: F.part.Term(b.P1, b.P2),
		})
	}
	return out
}

func (F *Factory) rewriteAngles(og *kinope.HarmonicAngleForce) *ScaledAngleForce {
	out := &ScaledAngleForce{Angles: make([]ScaledAngle, 0, len(og.Angles))}
	for _, a := range og.Angles {
		out.Angles = append(out.Angles, ScaledAngle{
			P1:       a.P1,
			P2:       a.P2,
			P3:       a.P3,
			Theta0:   a.Theta0,
			K:        a.K,
			Category: F.part.Term(a.P1, a.P2, a.P3),
		})
	}
	return out
}

func (F *Factory) rewriteTorsions(og *kinope.PeriodicTorsionForce) *ScaledTorsionForce {
	out := &ScaledTorsionForce{Torsions: make([]ScaledTorsion, 0, len(og.Torsions))}
	for _, t := range og.Torsions {
		out.Torsions = append(out.Torsions, ScaledTorsion{
			P1:          t.P1,
			P2:          t.P2,
			P3:          t.P3,
			P4:          t.P4,
			Periodicity: t.Periodicity,
			Phase:       t.Phase,
			K:           t.K,
			Category:    F.part.Term(t.P1, t.P2, t.P3, t.P4),
		})
	}
	return out
}

func (F *Factory) rewriteNonbonded(og *kinope.NonbondedForce) *ScaledNonbondedForce {
	out := new(ScaledNonbondedForce)
	out.Method = og.Method
	out.UseSwitchingFunction = og.UseSwitchingFunction
	if og.UseSwitchingFunction {
		out.SwitchingDistance = og.SwitchingDistance
	}
	if og.Method.UsesCutoff() {
		out.CutoffDistance = og.CutoffDistance
		out.ReactionFieldDielectric = og.ReactionFieldDielectric
	}
	if og.Method.UsesLongRange() {
		out.PME = og.PME
		out.EwaldErrorTolerance = og.EwaldErrorTolerance
	}
	//The caller flag is an override-to-off, never an override-to-on.
	out.UseDispersionCorrection = og.UseDispersionCorrection && F.useDisp
	F.Log.Infof("dispersion correction on the rewritten nonbonded force: %v", out.UseDispersionCorrection)

	out.Particles = make([]kinope.NonbondedParticle, 0, len(og.Particles))
	for i, p := range og.Particles {
		out.Particles = append(out.Particles, p)
		if F.part.Particle(i) != SoluteOnly {
			continue //solvent particles are never scaled
		}
		out.ParticleOffsets = append(out.ParticleOffsets,
			ParticleOffset{Parameter: ElectrostaticScale, Particle: i, Charge: p.Charge},
			ParticleOffset{Parameter: StericScale, Particle: i, Sigma: p.Sigma, Epsilon: p.Epsilon},
		)
	}

	out.Exceptions = make([]kinope.NonbondedException, 0, len(og.Exceptions))
	for idx, e := range og.Exceptions {
		out.Exceptions = append(out.Exceptions, e)
		switch F.part.Term(e.P1, e.P2) {
		case SoluteOnly:
			out.ExceptionOffsets = append(out.ExceptionOffsets,
				ExceptionOffset{Parameter: StericScale, Exception: idx, Sigma: e.Sigma, Epsilon: e.Epsilon})
		case Inter:
			out.ExceptionOffsets = append(out.ExceptionOffsets,
				ExceptionOffset{Parameter: ElectrostaticScale, Exception: idx, ChargeProd: e.ChargeProd})
		}
	}
	return out
}

//Errors

//The kinds of fatal conditions this package reports.
const (
	InvalidRegion        = "InvalidRegion"
	UnsupportedForceKind = "UnsupportedForceKind"
)

//Error is the concrete error type of the tempering package.
type Error struct {
	kind    string
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

//Kind returns which of the package's fatal conditions the error reports.
func (err *Error) Kind() string { return err.kind }

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	e, ok := err.(kinope.Error)
	if !ok {
		return err
	}
	e.Decorate(caller)
	return e
}
