/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cagekit/internal/vector"
)

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"not yaml":        "{{",
		"empty":           "",
		"no nodes":        "name: x\nnodes: []\nsteps: []\n",
		"unknown action":  "name: x\nnodes: [{bounds: [0, 0, 1, 1]}]\nsteps: [{action: jump}]\n",
		"short bounds":    "name: x\nnodes: [{bounds: [0, 0, 1]}]\nsteps: []\n",
		"down without at": "name: x\nnodes: [{bounds: [0, 0, 1, 1]}]\nsteps: [{action: down}]\n",
		"singular view":   "name: x\nview: [0, 0, 0, 0, 0, 0]\nnodes: [{bounds: [0, 0, 1, 1]}]\nsteps: []\n",
		"unknown field":   "name: x\ncolour: red\nnodes: [{bounds: [0, 0, 1, 1]}]\nsteps: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseBuildsNodesAndView(t *testing.T) {
	doc := `
name: view
view: [2, 0, 0, 2, 10, 0]
nodes:
  - shape: ellipse
    bounds: [0, 0, 10, 20]
    transform: [1, 0, 0, 1, 5, 5]
steps:
  - action: move
    at: [1, 2]
    modifiers: { center: true, axisAlign: true }
`
	sc, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, vector.Affine2D{A: 2, D: 2, E: 10}, sc.View())

	nodes := sc.BuildNodes()
	require.Len(t, nodes, 1)
	_, isEllipse := nodes[0].(*vector.EllipseNode)
	assert.True(t, isEllipse)
	assert.Equal(t, vector.B(5, 5, 15, 25), nodes[0].Bounds())

	st := sc.Steps[0]
	assert.True(t, st.Modifiers.Center)
	assert.True(t, st.Modifiers.AxisAlign)
	assert.False(t, st.Modifiers.Constrain)

	w, h := sc.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)
}
