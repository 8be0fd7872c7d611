/*
 * partition.go, part of kinope.
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
	"fmt"
	"sort"
)

//Category classifies an interaction term by the regions its participating
//particles belong to.
type Category int

const (
	SoluteOnly Category = iota
	SolventOnly
	Inter
)

func (c Category) String() string {
	switch c {
	case SoluteOnly:
		return "solute"
	case SolventOnly:
		return "solvent"
	case Inter:
		return "inter"
	}
	return "unknown"
}

//Identifier returns the numeric tag stored alongside each rewritten term.
//The shared energy expressions select a scale factor by applying delta() to
//this value, so the encoding (solute 0, solvent 1, inter 2) is part of the
//expression contract with the simulation engine.
func (c Category) Identifier() float64 {
	return float64(c)
}

//Partition splits the particle indexes [0,n) of a System into a solute
//region and its solvent complement, and classifies particles and interaction
//terms against that split.
type Partition struct {
	n      int
	solute map[int]bool
}

//NewPartition returns a Partition of numParticles particles with the given
//solute region. It fails with an InvalidRegion error if the solute region is
//not a subset of the valid particle indexes.
func NewPartition(numParticles int, soluteRegion []int) (*Partition, error) {
	solute := make(map[int]bool, len(soluteRegion))
	for _, idx := range soluteRegion {
		if idx < 0 || idx >= numParticles {
			err := new(Error)
			err.kind = InvalidRegion
			err.message = fmt.Sprintf("solute region index %d is not within the %d system particles", idx, numParticles)
			err.Decorate("NewPartition")
			return nil, err
		}
		solute[idx] = true
	}
	return &Partition{n: numParticles, solute: solute}, nil
}

//Len returns the total number of particles.
func (P *Partition) Len() int {
	return P.n
}

//IsSolute is true if particle i belongs to the solute region.
func (P *Partition) IsSolute(i int) bool {
	if i < 0 || i >= P.n {
		panic(fmt.Sprintf("tempering: particle index %d out of range (%d particles)", i, P.n))
	}
	return P.solute[i]
}

//Particle classifies a single particle: SoluteOnly if it belongs to the
//solute region, SolventOnly otherwise. It never returns Inter.
func (P *Partition) Particle(i int) Category {
	if P.IsSolute(i) {
		return SoluteOnly
	}
	return SolventOnly
}

//Term classifies a multi-particle interaction term by unanimity over its
//participants: SoluteOnly if all of them are solute, SolventOnly if all of
//them are solvent, Inter for mixed membership.
func (P *Partition) Term(particles ...int) Category {
	if len(particles) == 0 {
		panic("tempering: cannot classify a term with no participating particles")
	}
	nsolute := 0
	for _, p := range particles {
		if P.IsSolute(p) {
			nsolute++
		}
	}
	switch nsolute {
	case 0:
		return SolventOnly
	case len(particles):
		return SoluteOnly
	}
	return Inter
}

//Solute returns the solute region as a sorted slice of particle indexes.
func (P *Partition) Solute() []int {
	r := make([]int, 0, len(P.solute))
	for idx := range P.solute {
		r = append(r, idx)
	}
	sort.Ints(r)
	return r
}

//Solvent returns the solvent region, i.e. the sorted complement of the
//solute region.
func (P *Partition) Solvent() []int {
	r := make([]int, 0, P.n-len(P.solute))
	for i := 0; i < P.n; i++ {
		if !P.solute[i] {
			r = append(r, i)
		}
	}
	return r
}
