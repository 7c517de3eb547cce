// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strconv"

	"contractor-directory/internal/domain"
)

// SearchRequest represents the submitted directory filter form.
// services and certifications are repeated fields.
type SearchRequest struct {
	Zip            string   `form:"zip" validate:"max=10"`
	State          string   `form:"state" validate:"max=32"`
	Services       []string `form:"services" validate:"dive,max=64"`
	Certifications []string `form:"certifications" validate:"dive,max=64"`
	PageNumber     string   `form:"page-number"`
	PageSize       int      `form:"page-size" validate:"omitempty,min=1,max=100"`
}

// ToFilters converts the form fields to domain filters. A zip is kept
// only when exactly 5 characters long, otherwise it is coerced to empty.
// No digit validation happens at this layer.
func (r *SearchRequest) ToFilters() domain.ContractorFilters {
	zip := r.Zip
	if len(zip) != 5 {
		zip = ""
	}

	services := r.Services
	if services == nil {
		services = []string{}
	}
	certifications := r.Certifications
	if certifications == nil {
		certifications = []string{}
	}

	return domain.ContractorFilters{
		Zip:            zip,
		StateServed:    r.State,
		Services:       services,
		Certifications: certifications,
	}
}

// Page returns the requested page number, defaulting to 1 when the
// field is absent, non-numeric or below 1.
func (r *SearchRequest) Page() int {
	page, err := strconv.Atoi(r.PageNumber)
	if err != nil || page < 1 {
		return 1
	}

	return page
}

// Size returns the requested page size, defaulting to the domain
// default when unset.
func (r *SearchRequest) Size() int {
	if r.PageSize < 1 {
		return domain.DefaultPageSize
	}

	return r.PageSize
}
