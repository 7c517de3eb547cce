package dto

import (
	"contractor-directory/internal/domain"
)

// SearchResponse is the paginated payload consumed by the presentation
// layer. The contractor view-model already carries its presentation
// field names, so records pass through unmapped.
type SearchResponse struct {
	Contractors []*domain.Contractor `json:"contractors"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
}

// FromPage converts a domain page to a SearchResponse.
func FromPage(page *domain.ContractorPage) SearchResponse {
	return SearchResponse{
		Contractors: page.Contractors,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	}
}

// ServiceTypesResponse lists the taxonomy terms for the filter dropdown.
type ServiceTypesResponse struct {
	ServiceTypes []domain.ServiceType `json:"serviceTypes"`
}

// WarmResponse reports the result of a cache warm operation.
type WarmResponse struct {
	Count    int    `json:"count"`
	Duration string `json:"duration"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
