package wordpress

import (
	"regexp"
	"strconv"

	"contractor-directory/internal/domain"
)

// Record represents a raw contractor record from the WordPress REST API.
type Record struct {
	ID               int       `json:"id"`
	Title            Rendered  `json:"title"`
	Content          Rendered  `json:"content"`
	ACF              *Fields   `json:"acf"`
	FeaturedMediaURL string    `json:"featured_media_url"`
	ServiceTypes     []Term    `json:"contractor_service_type"`
	Embedded         *Embedded `json:"_embedded"`
}

// Rendered wraps a rich-text field rendered by WordPress.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Fields holds the ACF custom fields attached to a contractor post.
type Fields struct {
	Street1     string `json:"street_1"`
	Street2     string `json:"street_2"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	Website     string `json:"website"`
	Email       string `json:"email"`

	// Capability flags, one per known service category.
	EnergyAudit    bool `json:"energy_audit"`
	Weatherization bool `json:"weatherization"`
	HVACHeatPump   bool `json:"hvac_heat_pump"`
	Electrical     bool `json:"electrical"`
	WaterHeater    bool `json:"water_heater"`
	Appliances     bool `json:"appliances"`
}

// Term is a taxonomy term.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Embedded holds resources included via the _embed query parameter.
type Embedded struct {
	FeaturedMedia []Media `json:"wp:featuredmedia"`
}

// Media is an embedded media resource.
type Media struct {
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text"`
}

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// ToDomain converts a raw record to the contractor view-model. It never
// fails: absent optional fields degrade to the empty-string or
// empty-slice sentinel.
func (r *Record) ToDomain() *domain.Contractor {
	acf := r.ACF
	if acf == nil {
		acf = &Fields{}
	}

	// Featured image: embedded media first, then the legacy URL field.
	var image *string
	switch {
	case r.Embedded != nil && len(r.Embedded.FeaturedMedia) > 0 && r.Embedded.FeaturedMedia[0].SourceURL != "":
		image = &r.Embedded.FeaturedMedia[0].SourceURL
	case r.FeaturedMediaURL != "":
		image = &r.FeaturedMediaURL
	}

	// Flag order mirrors domain.ServiceCatalog: the index fixes the
	// service id, so both must stay in sync.
	flags := []bool{
		acf.EnergyAudit,
		acf.Weatherization,
		acf.HVACHeatPump,
		acf.Electrical,
		acf.WaterHeater,
		acf.Appliances,
	}

	services := make([]domain.Service, 0, len(flags))
	for i, enabled := range flags {
		if enabled {
			services = append(services, domain.ServiceCatalog[i].Service)
		}
	}

	return &domain.Contractor{
		ID:               strconv.Itoa(r.ID),
		Name:             r.Title.Rendered,
		Description:      markupPattern.ReplaceAllString(r.Content.Rendered, ""),
		Email:            acf.Email,
		Phone:            acf.PhoneNumber,
		Website:          acf.Website,
		AddressLine1:     acf.Street1,
		AddressLine2:     acf.Street2,
		City:             acf.City,
		State:            acf.State,
		Zip:              acf.ZipCode,
		FeaturedImageURL: image,
		Services:         services,
		StatesServed:     []string{},
		Certifications:   []domain.Certification{},
	}
}

// ToDomain converts a taxonomy term to the domain service type.
func (t *Term) ToDomain() domain.ServiceType {
	return domain.ServiceType{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
	}
}
