// Package domain contains the core business entities and ports.
// This package has no external dependencies (only stdlib).
package domain

// Contractor is the normalized contractor entity consumed by the
// presentation layer. It is built once per request from a raw CMS record
// and never mutated afterwards.
type Contractor struct {
	// Identity. Derived from the CMS numeric post id, always present.
	ID string `json:"id"`

	// Descriptive fields. Description is plain text with markup stripped.
	Name        string `json:"name"`
	Description string `json:"description"`

	// Contact. Empty string when the source field is absent.
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`

	// Address.
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`

	// Media.
	FeaturedImageURL *string `json:"featuredImageUrl"`

	// Classification. Services are derived from the CMS capability flags.
	// StatesServed and Certifications have no upstream source yet and are
	// always empty; the fields are kept for forward compatibility.
	Services       []Service       `json:"services"`
	StatesServed   []string        `json:"statesServed"`
	Certifications []Certification `json:"certifications"`

	// Distance is populated only by the annotation step.
	Distance *float64 `json:"distance,omitempty"`
}

// Service is a service category offered by a contractor.
type Service struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Certification is a contractor certification. Not modeled upstream yet.
type Certification struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// ServiceType is a taxonomy term from the CMS, used to populate the
// service filter dropdown.
type ServiceType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ServiceCatalog lists the known service categories in declaration order.
// The index of each entry fixes its 1-indexed service id, so the order
// must not change. Slugs match the CMS capability field names.
var ServiceCatalog = []struct {
	Service Service
	Slug    string
}{
	{Service{ID: 1, Name: "Energy Audit", Description: "Energy audit services"}, "energy_audit"},
	{Service{ID: 2, Name: "Weatherization", Description: "Weatherization services"}, "weatherization"},
	{Service{ID: 3, Name: "HVAC / Heat Pump", Description: "HVAC and heat pump services"}, "hvac_heat_pump"},
	{Service{ID: 4, Name: "Electrical", Description: "Electrical services"}, "electrical"},
	{Service{ID: 5, Name: "Water Heater", Description: "Water heater services"}, "water_heater"},
	{Service{ID: 6, Name: "Appliances", Description: "Appliance services"}, "appliances"},
}

// ContractorFilters is the application-level filter set, built fresh per
// request from submitted form fields and never persisted.
type ContractorFilters struct {
	// Zip is either empty or exactly 5 characters. It drives local
	// distance annotation only and is never forwarded upstream.
	Zip string

	// StateServed is a single state value or empty.
	StateServed string

	// Services holds the selected service slugs. The CMS taxonomy supports
	// a single term per request, so only the first entry is forwarded.
	Services []string

	// Certifications are not modeled upstream and never forwarded.
	Certifications []string
}

// ContractorPage is one page of search results plus pagination metadata.
type ContractorPage struct {
	Contractors []*Contractor `json:"contractors"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// EmptyPage returns the payload served before the first user-driven
// search: no contractors, zero pages, cursor on page one.
func EmptyPage() *ContractorPage {
	return &ContractorPage{
		Contractors: []*Contractor{},
		TotalPages:  0,
		CurrentPage: 1,
	}
}

// DefaultPageSize is the per-page record count requested from the CMS
// when the caller does not specify one.
const DefaultPageSize = 10
