package wordpress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractor-directory/internal/domain"
)

// TestRecord_ToDomain_AllFlagsFalse verifies an empty services sequence
// when no capability flag is set.
func TestRecord_ToDomain_AllFlagsFalse(t *testing.T) {
	record := Record{
		ID:      1,
		Title:   Rendered{Rendered: "No Services LLC"},
		Content: Rendered{Rendered: "text"},
		ACF:     &Fields{},
	}

	contractor := record.ToDomain()

	assert.Empty(t, contractor.Services)
	assert.NotNil(t, contractor.Services)
}

// TestRecord_ToDomain_AllFlagsTrue verifies all six services appear in
// declaration order with their fixed 1-indexed ids.
func TestRecord_ToDomain_AllFlagsTrue(t *testing.T) {
	record := Record{
		ID: 2,
		ACF: &Fields{
			EnergyAudit:    true,
			Weatherization: true,
			HVACHeatPump:   true,
			Electrical:     true,
			WaterHeater:    true,
			Appliances:     true,
		},
	}

	contractor := record.ToDomain()

	require.Len(t, contractor.Services, 6)

	expected := []string{
		"Energy Audit",
		"Weatherization",
		"HVAC / Heat Pump",
		"Electrical",
		"Water Heater",
		"Appliances",
	}
	for i, svc := range contractor.Services {
		assert.Equal(t, i+1, svc.ID)
		assert.Equal(t, expected[i], svc.Name)
	}
}

// TestRecord_ToDomain_MissingOptionalFields verifies the transform
// degrades to empty sentinels rather than panicking when acf and
// _embedded are absent.
func TestRecord_ToDomain_MissingOptionalFields(t *testing.T) {
	record := Record{ID: 3}

	var contractor *domain.Contractor
	require.NotPanics(t, func() {
		contractor = record.ToDomain()
	})

	assert.Equal(t, "3", contractor.ID)
	assert.Equal(t, "", contractor.Name)
	assert.Equal(t, "", contractor.Email)
	assert.Equal(t, "", contractor.Phone)
	assert.Equal(t, "", contractor.Website)
	assert.Equal(t, "", contractor.AddressLine1)
	assert.Equal(t, "", contractor.AddressLine2)
	assert.Equal(t, "", contractor.City)
	assert.Equal(t, "", contractor.State)
	assert.Equal(t, "", contractor.Zip)
	assert.Nil(t, contractor.FeaturedImageURL)
	assert.Empty(t, contractor.Services)
	assert.Empty(t, contractor.StatesServed)
	assert.Empty(t, contractor.Certifications)
	assert.Nil(t, contractor.Distance)
}

// TestRecord_ToDomain_StripsMarkup verifies rich-text markup is removed
// from the description.
func TestRecord_ToDomain_StripsMarkup(t *testing.T) {
	record := Record{
		ID:      7,
		Title:   Rendered{Rendered: "Acme HVAC"},
		Content: Rendered{Rendered: "<p>Great <b>service</b></p>"},
		ACF: &Fields{
			HVACHeatPump: true,
			City:         "Washington",
			State:        "DC",
		},
	}

	contractor := record.ToDomain()

	assert.Equal(t, "7", contractor.ID)
	assert.Equal(t, "Acme HVAC", contractor.Name)
	assert.Equal(t, "Great service", contractor.Description)
	require.Len(t, contractor.Services, 1)
	assert.Equal(t, 3, contractor.Services[0].ID)
	assert.Equal(t, "HVAC / Heat Pump", contractor.Services[0].Name)
	assert.Equal(t, "Washington", contractor.City)
	assert.Equal(t, "DC", contractor.State)
	assert.Empty(t, contractor.StatesServed)
	assert.Empty(t, contractor.Certifications)
}

// TestRecord_ToDomain_FeaturedImage verifies the embedded media wins
// over the legacy URL field, which wins over nothing.
func TestRecord_ToDomain_FeaturedImage(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected *string
	}{
		{
			name: "embedded media first",
			record: Record{
				FeaturedMediaURL: "https://cms.example.com/legacy.jpg",
				Embedded: &Embedded{
					FeaturedMedia: []Media{{SourceURL: "https://cms.example.com/full.jpg"}},
				},
			},
			expected: strPtr("https://cms.example.com/full.jpg"),
		},
		{
			name: "legacy field fallback",
			record: Record{
				FeaturedMediaURL: "https://cms.example.com/legacy.jpg",
			},
			expected: strPtr("https://cms.example.com/legacy.jpg"),
		},
		{
			name: "empty embedded list falls back",
			record: Record{
				FeaturedMediaURL: "https://cms.example.com/legacy.jpg",
				Embedded:         &Embedded{FeaturedMedia: []Media{}},
			},
			expected: strPtr("https://cms.example.com/legacy.jpg"),
		},
		{
			name:     "no media at all",
			record:   Record{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contractor := tt.record.ToDomain()
			if tt.expected == nil {
				assert.Nil(t, contractor.FeaturedImageURL)
			} else {
				require.NotNil(t, contractor.FeaturedImageURL)
				assert.Equal(t, *tt.expected, *contractor.FeaturedImageURL)
			}
		})
	}
}

// TestRecord_Decode verifies the wire shape decodes, including the
// wp:featuredmedia embed key.
func TestRecord_Decode(t *testing.T) {
	raw := `{
		"id": 7,
		"title": {"rendered": "Acme HVAC"},
		"content": {"rendered": "<p>Great <b>service</b></p>"},
		"acf": {"hvac_heat_pump": true, "city": "Washington", "state": "DC"},
		"_embedded": {"wp:featuredmedia": [{"source_url": "https://cms.example.com/a.jpg", "alt_text": "van"}]}
	}`

	var record Record
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	assert.Equal(t, 7, record.ID)
	assert.Equal(t, "Acme HVAC", record.Title.Rendered)
	require.NotNil(t, record.ACF)
	assert.True(t, record.ACF.HVACHeatPump)
	require.NotNil(t, record.Embedded)
	require.Len(t, record.Embedded.FeaturedMedia, 1)
	assert.Equal(t, "https://cms.example.com/a.jpg", record.Embedded.FeaturedMedia[0].SourceURL)
}

func strPtr(s string) *string {
	return &s
}
