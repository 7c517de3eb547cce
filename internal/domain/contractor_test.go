package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServiceCatalog_FixedIDs verifies the 1-indexed id of each catalog
// entry matches its position. Client-side filter values depend on these
// ids staying put.
func TestServiceCatalog_FixedIDs(t *testing.T) {
	require.Len(t, ServiceCatalog, 6)

	for i, entry := range ServiceCatalog {
		assert.Equal(t, i+1, entry.Service.ID)
		assert.NotEmpty(t, entry.Slug)
	}

	assert.Equal(t, "energy_audit", ServiceCatalog[0].Slug)
	assert.Equal(t, "hvac_heat_pump", ServiceCatalog[2].Slug)
	assert.Equal(t, "appliances", ServiceCatalog[5].Slug)
}

func TestEmptyPage(t *testing.T) {
	page := EmptyPage()

	assert.NotNil(t, page.Contractors)
	assert.Empty(t, page.Contractors)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
}

// TestContractor_JSONShape verifies the wire field names the front end
// binds to, including distance omission when unset.
func TestContractor_JSONShape(t *testing.T) {
	c := Contractor{
		ID:             "7",
		Name:           "Acme HVAC",
		AddressLine1:   "123 Main St NW",
		Services:       []Service{},
		StatesServed:   []string{},
		Certifications: []Certification{},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw, "addressLine1")
	assert.Contains(t, raw, "featuredImageUrl")
	assert.Contains(t, raw, "statesServed")
	assert.NotContains(t, raw, "distance")

	d := 3.2
	c.Distance = &d
	data, err = json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "distance")
}
