/*
 * protocol.go, part of kinope.
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
Package protocol derives the lambda schedule that drives the global scale
factors of a tempered System. The schedule heats the system from Tmin at
lambda 0 to Tmax at lambda 0.5 along an exponential ramp, then cools it back
symmetrically to Tmin at lambda 1, so both path endpoints sample the same
untempered distribution.

The scale factors are handed out as expression strings in the simulation
engine's expression language; the engine evaluates them as simulated time
advances lambda. The package can also evaluate them itself, which is how the
schedule gets tested and plotted without an engine around.
*/
package protocol

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/dominicrufa/kinope/tempering"
)

//Generate returns the tempering Schedule for the temperature range [tmin,
//tmax] (in K). It fails with an InvalidTemperatureRange error if tmax is not
//strictly greater than tmin, since the heat/cool ramp is undefined
//otherwise.
func Generate(tmin, tmax float64) (*Schedule, error) {
	if tmax <= tmin {
		err := new(Error)
		err.kind = InvalidTemperatureRange
		err.message = fmt.Sprintf("Tmax (%v K) must be greater than Tmin (%v K)", tmax, tmin)
		err.Decorate("Generate")
		return nil, err
	}
	temperature := temperatureExpression(tmin, tmax)
	mn := format(tmin)
	s := &Schedule{
		tmin: tmin,
		tmax: tmax,
		expressions: map[string]string{
			tempering.SoluteScale:        fmt.Sprintf("%s / %s", mn, temperature),
			tempering.InterScale:         fmt.Sprintf("sqrt(%s / %s)", mn, temperature),
			tempering.StericScale:        fmt.Sprintf("(%s / %s) - 1", mn, temperature),
			tempering.ElectrostaticScale: fmt.Sprintf("sqrt(%s / %s) - 1", mn, temperature),
		},
		compiled: make(map[string]*govaluate.EvaluableExpression, 4),
	}
	for name, expr := range s.expressions {
		c, err := govaluate.NewEvaluableExpressionWithFunctions(expr, expressionFunctions())
		if err != nil {
			e := new(Error)
			e.message = fmt.Sprintf("cannot parse the %s expression: %v", name, err)
			e.Decorate("Generate")
			return nil, e
		}
		s.compiled[name] = c
	}
	return s, nil
}

//temperatureExpression builds the effective-temperature expression T(lambda):
//an exponential ramp from tmin to tmax for lambda <= 0.5 and the same ramp
//run backwards on (1 - lambda) above.
func temperatureExpression(tmin, tmax float64) string {
	const ramp = "%s + (%s - %s)*(exp(2*%s) - 1) / (exp(1) - 1)"
	mn, mx := format(tmin), format(tmax)
	heating := fmt.Sprintf(ramp, mn, mx, mn, "(lambda)")
	cooling := fmt.Sprintf(ramp, mn, mx, mn, "(1.0 - lambda)")
	return fmt.Sprintf("select(step(lambda - 0.5), %s, %s)", cooling, heating)
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

//expressionFunctions returns the function set the schedule expressions rely
//on, with the engine's semantics: step(x) is 0 for negative x and 1
//otherwise, and select(x, y, z) returns z if x is zero and y otherwise.
func expressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"exp": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("exp takes one argument, got %d", len(args))
			}
			return math.Exp(args[0].(float64)), nil
		},
		"sqrt": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("sqrt takes one argument, got %d", len(args))
			}
			return math.Sqrt(args[0].(float64)), nil
		},
		"step": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("step takes one argument, got %d", len(args))
			}
			if args[0].(float64) < 0 {
				return 0.0, nil
			}
			return 1.0, nil
		},
		"select": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("select takes three arguments, got %d", len(args))
			}
			if args[0].(float64) == 0 {
				return args[2], nil
			}
			return args[1], nil
		},
	}
}

//Schedule maps each global scale-factor name to a closed-form expression of
//the lambda control parameter. A Schedule is immutable and safe for
//concurrent use.
type Schedule struct {
	tmin, tmax  float64
	expressions map[string]string
	compiled    map[string]*govaluate.EvaluableExpression
}

//TMin returns the temperature (K) of the untempered endpoints.
func (s *Schedule) TMin() float64 { return s.tmin }

//TMax returns the peak effective temperature (K), reached at lambda 0.5.
func (s *Schedule) TMax() float64 { return s.tmax }

//Names returns the scale-factor names the Schedule drives.
func (s *Schedule) Names() []string {
	return []string{
		tempering.SoluteScale,
		tempering.InterScale,
		tempering.StericScale,
		tempering.ElectrostaticScale,
	}
}

//Expressions returns the mapping from scale-factor name to expression
//string, for handing to the simulation engine. The map is a copy.
func (s *Schedule) Expressions() map[string]string {
	m := make(map[string]string, len(s.expressions))
	for k, v := range s.expressions {
		m[k] = v
	}
	return m
}

//Expression returns the expression string for the named scale factor, or the
//empty string for a name the Schedule does not drive.
func (s *Schedule) Expression(name string) string {
	return s.expressions[name]
}

//Eval evaluates the named scale-factor expression at the given lambda, the
//same way the engine's expression evaluator would.
func (s *Schedule) Eval(name string, lambda float64) (float64, error) {
	c, ok := s.compiled[name]
	if !ok {
		err := new(Error)
		err.message = fmt.Sprintf("no scale factor named %q in the schedule", name)
		err.Decorate("Eval")
		return 0, err
	}
	v, err := c.Evaluate(map[string]interface{}{"lambda": lambda})
	if err != nil {
		e := new(Error)
		e.message = fmt.Sprintf("cannot evaluate %s at lambda=%v: %v", name, lambda, err)
		e.Decorate("Eval")
		return 0, e
	}
	return v.(float64), nil
}

//Temperature returns the effective temperature T(lambda) in closed form,
//without going through the expression strings.
func (s *Schedule) Temperature(lambda float64) float64 {
	x := lambda
	if lambda > 0.5 {
		x = 1.0 - lambda
	}
	return s.tmin + (s.tmax-s.tmin)*(math.Exp(2*x)-1)/(math.E-1)
}

//Errors

//InvalidTemperatureRange is the error kind reported when Tmax <= Tmin.
const InvalidTemperatureRange = "InvalidTemperatureRange"

//Error is the concrete error type of the protocol package.
type Error struct {
	kind    string
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

//Kind returns which of the package's fatal conditions the error reports, or
//the empty string for plain evaluation errors.
func (err *Error) Kind() string { return err.kind }

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
