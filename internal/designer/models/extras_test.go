package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-designer/internal/common/apierr"
)

func TestCopyOpeningsAssignsFreshIDs(t *testing.T) {
	doors := []Door{
		{ID: "client-1", Wall: "wall-1", Position: 0.5, Path: "doors/front.glb"},
		{ID: "client-1", Wall: " wall-3 ", Position: 0.2, Scale: Scale{X: 2, Y: 1, Z: 1}},
	}
	windows := []Window{{Wall: "wall-2", Position: 0.1, Position2: 0.4}}

	outDoors, outWindows, err := CopyOpenings(doors, windows)
	require.NoError(t, err)
	require.Len(t, outDoors, 2)
	require.Len(t, outWindows, 1)

	assert.NotEqual(t, "client-1", outDoors[0].ID)
	assert.NotEqual(t, outDoors[0].ID, outDoors[1].ID)
	assert.Equal(t, "wall-3", outDoors[1].Wall)
	assert.Equal(t, Scale{X: 1, Y: 1, Z: 1}, outDoors[0].Scale)
	assert.Equal(t, Scale{X: 2, Y: 1, Z: 1}, outDoors[1].Scale)
	assert.Equal(t, "client-1", doors[0].ID, "input must not be mutated")
}

func TestCopyOpeningsValidation(t *testing.T) {
	_, _, err := CopyOpenings([]Door{{Wall: "wall-1", Position: 1.2}}, nil)
	assert.True(t, errors.Is(err, apierr.ErrValidation))

	_, _, err = CopyOpenings(nil, []Window{{Wall: "wall-1", Position: 0.2, Position2: -0.1}})
	assert.True(t, errors.Is(err, apierr.ErrValidation))

	_, _, err = CopyOpenings([]Door{{Position: 0.5}}, nil)
	assert.True(t, errors.Is(err, apierr.ErrValidation))
}

func TestCopyOpeningsAllowsUnknownWall(t *testing.T) {
	doors, _, err := CopyOpenings([]Door{{Wall: "north", Position: 0.5}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "north", doors[0].Wall)
}
