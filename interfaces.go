/*
 * interfaces.go, part of kinope.
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

//Force is implemented by every interaction term container a System can hold.
//The set of kinds a plain, untempered System may contain is closed (bonds,
//angles, torsions, nonbonded, barostat); consumers that need to act per kind
//should type-switch on the concrete force types, not on Kind(), which exists
//for naming forces in messages and errors.
type Force interface {
	Kind() ForceKind
}

//GlobalDeclarer is implemented by forces that declare named global control
//parameters (scale factors). The declared defaults are the values the force
//expects until an external controller starts driving the parameters.
type GlobalDeclarer interface {
	GlobalParameters() []GlobalParameter
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate allows you to add information when you pass the error up. Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function, any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}
