package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_UsesWholeUUID(t *testing.T) {
	a := uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000001")
	b := uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000002")
	require.Equal(t, a.ID(), b.ID())

	assert.Equal(t, a.String(), pointID(a).GetUuid())
	assert.NotEqual(t, pointID(a).GetUuid(), pointID(b).GetUuid())
}

func TestPayloadString(t *testing.T) {
	assert.Equal(t, "", payloadString(nil, payloadFilename))
}
