package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contractor-directory/internal/domain"
)

// TestZipAnnotator_Identity verifies the pass-through contract: same
// contractors, same order, no distances, no error.
func TestZipAnnotator_Identity(t *testing.T) {
	annotator := New(zap.NewNop())

	contractors := []*domain.Contractor{
		{ID: "7", Name: "Acme HVAC"},
		{ID: "12", Name: "Capital Weatherization Co"},
		{ID: "19", Name: "Potomac Electric"},
	}

	annotated, err := annotator.Annotate(context.Background(), contractors, "20001")

	require.NoError(t, err)
	require.Len(t, annotated, 3)
	for i, c := range annotated {
		assert.Equal(t, contractors[i].ID, c.ID)
		assert.Nil(t, c.Distance)
	}
}

func TestZipAnnotator_EmptyInput(t *testing.T) {
	annotator := New(zap.NewNop())

	annotated, err := annotator.Annotate(context.Background(), []*domain.Contractor{}, "20001")

	require.NoError(t, err)
	assert.Empty(t, annotated)
}
