/*
 * doc.go, part of kinope.
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
Package kinope holds a minimal molecular-mechanics force-field model: a System
of particles with masses, constraints and periodic box vectors, plus the five
force kinds the library understands (harmonic bonds and angles, periodic
torsions, a nonbonded force with pairwise exceptions, and a Monte Carlo
barostat).

The model exists to be transformed. The tempering subpackage rewrites a System
so that a designated solute subset of its particles can be selectively heated
relative to the rest of the system (REST2, Replica Exchange with Solute
Tempering, variant 2), driven by a set of named global scale factors. The
protocol subpackage derives the closed-form schedule that moves those scale
factors as a function of a single lambda control parameter, and the energy
subpackage evaluates potential energies of both plain and rewritten systems,
mostly so that the rewrite can be regression-tested against the original
physics.

kinope does not run dynamics and does not read or write files. Integration,
serialization and replica exchange itself belong to whatever simulation engine
consumes the rewritten System.
*/
package kinope
