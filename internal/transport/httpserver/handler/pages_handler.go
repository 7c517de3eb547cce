package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"contractor-directory/internal/app/service"
	"contractor-directory/internal/domain"
)

// sitemapPageSize is the first-page size used to enumerate contractors
// for the sitemap. Large enough to cover the whole directory today.
const sitemapPageSize = 1000

// PagesHandler renders the HTML directory pages and the crawler
// endpoints (sitemap, robots).
type PagesHandler struct {
	service *service.DirectoryService
	logger  *zap.Logger
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(svc *service.DirectoryService, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{
		service: svc,
		logger:  logger,
	}
}

// Directory handles GET /
// Renders the filter form and an empty results list; the first search is
// client-driven against the API.
func (h *PagesHandler) Directory(c *fiber.Ctx) error {
	types, err := h.service.ServiceTypes(c.Context())
	if err != nil {
		// The page still renders, the dropdown just falls back to the
		// built-in catalog.
		h.logger.Warn("service types unavailable for render", zap.Error(err))
		types = catalogServiceTypes()
	}

	return c.Render("pages/directory", fiber.Map{
		"Title":        "Find Contractors",
		"ServiceTypes": types,
		"States":       []string{"DC", "MD", "VA"},
	}, "layouts/base")
}

// ContractorDetail handles GET /contractors/:id
func (h *PagesHandler) ContractorDetail(c *fiber.Ctx) error {
	contractor, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	return c.Render("pages/contractor", fiber.Map{
		"Title":      contractor.Name,
		"Contractor": contractor,
	}, "layouts/base")
}

// Sitemap handles GET /sitemap.xml
func (h *PagesHandler) Sitemap(c *fiber.Ctx) error {
	baseURL := c.BaseURL()
	lastmod := time.Now().UTC().Format(time.RFC3339)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeSitemapURL(&sb, baseURL+"/", lastmod, "daily", "1.0")

	page, err := h.service.Search(c.Context(), domain.ContractorFilters{}, 1, sitemapPageSize)
	if err != nil {
		// Serve the static entries rather than failing the crawl.
		h.logger.Warn("sitemap contractor fetch failed", zap.Error(err))
	} else {
		for _, contractor := range page.Contractors {
			writeSitemapURL(&sb, fmt.Sprintf("%s/contractors/%s", baseURL, contractor.ID), lastmod, "weekly", "0.8")
		}
	}

	sb.WriteString("</urlset>\n")

	c.Set(fiber.HeaderContentType, "application/xml")

	return c.SendString(sb.String())
}

// Robots handles GET /robots.txt
func (h *PagesHandler) Robots(c *fiber.Ctx) error {
	robots := fmt.Sprintf(`User-agent: *
Allow: /
Sitemap: %s/sitemap.xml

Disallow: /api/v1/admin/
`, c.BaseURL())

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.SendString(robots)
}

func writeSitemapURL(sb *strings.Builder, loc, lastmod, changefreq, priority string) {
	sb.WriteString("  <url>\n")
	sb.WriteString("    <loc>" + loc + "</loc>\n")
	sb.WriteString("    <lastmod>" + lastmod + "</lastmod>\n")
	sb.WriteString("    <changefreq>" + changefreq + "</changefreq>\n")
	sb.WriteString("    <priority>" + priority + "</priority>\n")
	sb.WriteString("  </url>\n")
}

// catalogServiceTypes maps the built-in service catalog to taxonomy
// terms, used when the CMS taxonomy endpoint is unreachable.
func catalogServiceTypes() []domain.ServiceType {
	types := make([]domain.ServiceType, 0, len(domain.ServiceCatalog))
	for _, entry := range domain.ServiceCatalog {
		types = append(types, domain.ServiceType{
			ID:   entry.Service.ID,
			Name: entry.Service.Name,
			Slug: entry.Slug,
		})
	}

	return types
}
