/*
 * partition_test.go, part of kinope.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionParticle(t *testing.T) {
	p, err := NewPartition(10, []int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 10, p.Len())
	//every particle is either solute or solvent, never Inter
	for i := 0; i < 10; i++ {
		c := p.Particle(i)
		if i < 5 {
			assert.Equal(t, SoluteOnly, c, "particle %d", i)
		} else {
			assert.Equal(t, SolventOnly, c, "particle %d", i)
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p.Solute())
	assert.Equal(t, []int{5, 6, 7, 8, 9}, p.Solvent())
}

func TestPartitionTerm(t *testing.T) {
	p, err := NewPartition(10, []int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	cases := []struct {
		name      string
		particles []int
		want      Category
	}{
		{"solute pair", []int{0, 1}, SoluteOnly},
		{"solvent pair", []int{5, 9}, SolventOnly},
		{"mixed pair", []int{4, 5}, Inter},
		{"solute angle", []int{0, 1, 2}, SoluteOnly},
		{"mixed angle", []int{3, 4, 5}, Inter},
		{"solvent torsion", []int{5, 6, 7, 8}, SolventOnly},
		{"one solute among solvent", []int{0, 7, 8, 9}, Inter},
		{"one solvent among solute", []int{0, 1, 2, 9}, Inter},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, p.Term(c.particles...), c.name)
	}
	//Inter occurs iff the participant set is neither all-solute nor
	//all-solvent, so a mixed term stays Inter no matter the order.
	assert.Equal(t, Inter, p.Term(5, 4))
	assert.Panics(t, func() { p.Term() })
	assert.Panics(t, func() { p.Particle(10) })
}

func TestPartitionEmptySoluteRegion(t *testing.T) {
	p, err := NewPartition(3, nil)
	require.NoError(t, err)
	assert.Equal(t, SolventOnly, p.Term(0, 1, 2))
	assert.Equal(t, []int{}, p.Solute())
}

func TestPartitionInvalidRegion(t *testing.T) {
	for _, bad := range [][]int{{10}, {-1}, {0, 1, 11}} {
		_, err := NewPartition(10, bad)
		require.Error(t, err, "region %v", bad)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, InvalidRegion, perr.Kind())
	}
}

func TestCategoryIdentifier(t *testing.T) {
	//the numeric encoding is part of the expression contract
	assert.Equal(t, 0.0, SoluteOnly.Identifier())
	assert.Equal(t, 1.0, SolventOnly.Identifier())
	assert.Equal(t, 2.0, Inter.Identifier())
	assert.Equal(t, "solute", SoluteOnly.String())
	assert.Equal(t, "solvent", SolventOnly.String())
	assert.Equal(t, "inter", Inter.String())
}
