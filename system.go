/*
 * system.go, part of kinope.
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

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/**Note: Some functions here panic instead of returning errors. This is because
 * they are "fundamental" functions: if something goes wrong in them, the
 * program is way-most likely wrong and should crash. The panics are related to
 * out-of-bounds particle indexes.**/

//Constraint fixes the distance (nm) between the particle pair P1, P2.
type Constraint struct {
	P1, P2   int
	Distance float64
}

//System is a force-field description of a fixed set of particles: one mass
//per particle, distance constraints, periodic box vectors and a list of
//Force containers. A particle is identified by its index, assigned in the
//order AddParticle was called.
type System struct {
	masses      []float64
	constraints []Constraint
	box         *mat.Dense //3x3 row-per-vector, nil if not periodic
	forces      []Force
}

//NewSystem returns an empty System.
func NewSystem() *System {
	return &System{
		masses: make([]float64, 0, 100),
		forces: make([]Force, 0, 5),
	}
}

//AddParticle appends a particle with the given mass (amu) and returns its
//index.
func (S *System) AddParticle(mass float64) int {
	S.masses = append(S.masses, mass)
	return len(S.masses) - 1
}

//Len returns the number of particles in the System.
func (S *System) Len() int {
	return len(S.masses)
}

//Mass returns the mass of particle i.
func (S *System) Mass(i int) float64 {
	if i < 0 || i >= len(S.masses) {
		panic(fmt.Sprintf("kinope: particle index %d out of range (%d particles)", i, len(S.masses)))
	}
	return S.masses[i]
}

//Masses returns a slice with the masses of all particles, in particle-index
//order. The slice is a copy.
func (S *System) Masses() []float64 {
	m := make([]float64, len(S.masses))
	copy(m, S.masses)
	return m
}

//AddConstraint fixes the distance between particles p1 and p2.
func (S *System) AddConstraint(p1, p2 int, distance float64) {
	S.constraints = append(S.constraints, Constraint{P1: p1, P2: p2, Distance: distance})
}

//Constraints returns the constraint list. The returned slice is owned by the
//System and must not be modified.
func (S *System) Constraints() []Constraint {
	return S.constraints
}

//AddForce appends a force container to the System.
func (S *System) AddForce(f Force) {
	S.forces = append(S.forces, f)
}

//Forces returns the force containers of the System, in the order they were
//added. The returned slice is owned by the System and must not be modified.
func (S *System) Forces() []Force {
	return S.forces
}

//SetBoxVectors sets the default periodic box vectors of the System from a
//3x3 matrix with one box vector per row. The matrix is copied. A nil box
//marks the System as non-periodic.
func (S *System) SetBoxVectors(box *mat.Dense) error {
	if box == nil {
		S.box = nil
		return nil
	}
	r, c := box.Dims()
	if r != 3 || c != 3 {
		err := new(CError)
		err.msg = fmt.Sprintf("box vectors must form a 3x3 matrix, got %dx%d", r, c)
		err.Decorate("SetBoxVectors")
		return err
	}
	S.box = mat.DenseCopyOf(box)
	return nil
}

//BoxVectors returns a copy of the default periodic box vectors, or nil for a
//non-periodic System.
func (S *System) BoxVectors() *mat.Dense {
	if S.box == nil {
		return nil
	}
	return mat.DenseCopyOf(S.box)
}

//GlobalParameters collects the global control parameters declared by the
//System's forces, in force order, with duplicated names removed (several
//forces may share one control variable; the first declaration wins).
func (S *System) GlobalParameters() []GlobalParameter {
	seen := make(map[string]bool)
	params := make([]GlobalParameter, 0, 4)
	for _, f := range S.forces {
		d, ok := f.(GlobalDeclarer)
		if !ok {
			continue
		}
		for _, p := range d.GlobalParameters() {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			params = append(params, p)
		}
	}
	return params
}

//CError is the concrete error type of the root package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
