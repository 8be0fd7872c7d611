/*
 * geometry.go, part of kinope.
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

package energy

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//used to correct floating point errors. Everything equal or less than this
//is considered zero.
const appzero = 0.0000001

type vec [3]float64

func row(coords *mat.Dense, i int) vec {
	return vec{coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)}
}

func sub(a, b vec) vec {
	return vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b vec) float64 {
	return floats.Dot(a[:], b[:])
}

func cross(a, b vec) vec {
	return vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(a vec) float64 {
	return floats.Norm(a[:], 2)
}

func scale(s float64, a vec) vec {
	return vec{s * a[0], s * a[1], s * a[2]}
}

//dist returns the distance between particles i and j.
func dist(coords *mat.Dense, i, j int) float64 {
	return norm(sub(row(coords, j), row(coords, i)))
}

//angle returns the angle (radians) at particle j formed by particles i-j-k.
func angle(coords *mat.Dense, i, j, k int) float64 {
	v1 := sub(row(coords, i), row(coords, j))
	v2 := sub(row(coords, k), row(coords, j))
	argument := dot(v1, v2) / (norm(v1) * norm(v2))
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	return math.Acos(argument)
}

//dihedral returns the dihedral (radians) between the plane of particles
//a, b, c and the plane of particles b, c, d.
func dihedral(coords *mat.Dense, a, b, c, d int) float64 {
	bma := sub(row(coords, b), row(coords, a))
	cmb := sub(row(coords, c), row(coords, b))
	dmc := sub(row(coords, d), row(coords, c))
	first := dot(scale(norm(cmb), bma), cross(cmb, dmc))
	second := dot(cross(bma, cmb), cross(cmb, dmc))
	return math.Atan2(first, second)
}
