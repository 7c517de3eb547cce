package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractor-directory/internal/validator"
)

// TestSearchRequest_ToFilters_ZipCoercion verifies the 5-character rule:
// anything else is treated as no zip at all. No digit check happens here.
func TestSearchRequest_ToFilters_ZipCoercion(t *testing.T) {
	tests := []struct {
		name     string
		zip      string
		expected string
	}{
		{"exactly five chars kept", "20001", "20001"},
		{"five non-digit chars kept", "abcde", "abcde"},
		{"empty dropped", "", ""},
		{"too short dropped", "2000", ""},
		{"too long dropped", "200011", ""},
		{"zip+4 dropped", "20001-1234", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SearchRequest{Zip: tt.zip}
			assert.Equal(t, tt.expected, req.ToFilters().Zip)
		})
	}
}

// TestSearchRequest_ToFilters_NilSlices verifies nil form slices become
// empty slices so downstream code never nil-checks.
func TestSearchRequest_ToFilters_NilSlices(t *testing.T) {
	req := SearchRequest{}

	filters := req.ToFilters()

	assert.NotNil(t, filters.Services)
	assert.Empty(t, filters.Services)
	assert.NotNil(t, filters.Certifications)
	assert.Empty(t, filters.Certifications)
}

func TestSearchRequest_ToFilters_Passthrough(t *testing.T) {
	req := SearchRequest{
		Zip:            "20001",
		State:          "DC",
		Services:       []string{"hvac_heat_pump", "electrical"},
		Certifications: []string{"BPI"},
	}

	filters := req.ToFilters()

	assert.Equal(t, "DC", filters.StateServed)
	assert.Equal(t, []string{"hvac_heat_pump", "electrical"}, filters.Services)
	assert.Equal(t, []string{"BPI"}, filters.Certifications)
}

// TestSearchRequest_Page verifies page parsing defaults to 1 for absent,
// non-numeric and out-of-range values.
func TestSearchRequest_Page(t *testing.T) {
	tests := []struct {
		name       string
		pageNumber string
		expected   int
	}{
		{"absent", "", 1},
		{"non-numeric", "abc", 1},
		{"zero", "0", 1},
		{"negative", "-3", 1},
		{"valid", "7", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SearchRequest{PageNumber: tt.pageNumber}
			assert.Equal(t, tt.expected, req.Page())
		})
	}
}

func TestSearchRequest_Size(t *testing.T) {
	assert.Equal(t, 10, (&SearchRequest{}).Size())
	assert.Equal(t, 25, (&SearchRequest{PageSize: 25}).Size())
}

// TestSearchRequest_Validation verifies length limits and that the error
// messages name fields by their form tag.
func TestSearchRequest_Validation(t *testing.T) {
	v := validator.New()

	t.Run("valid request", func(t *testing.T) {
		req := SearchRequest{
			Zip:      "20001",
			State:    "DC",
			Services: []string{"hvac_heat_pump"},
			PageSize: 25,
		}
		assert.NoError(t, v.Validate(req))
	})

	t.Run("zip too long", func(t *testing.T) {
		req := SearchRequest{Zip: "20001-1234-extra"}
		err := v.Validate(req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "zip must be at most 10")
	})

	t.Run("page size out of range", func(t *testing.T) {
		req := SearchRequest{PageSize: 500}
		err := v.Validate(req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page-size")
	})
}
