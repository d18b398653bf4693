package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Page struct {
	Page    int
	PerPage int
}

// FromQuery - page / perPage parametrelerini çözer; bozuk değerlerde varsayılana döner
func FromQuery(c *fiber.Ctx) Page {
	return Parse(c.Query("page"), c.Query("perPage"))
}

func Parse(pageStr, perPageStr string) Page {
	p := Page{Page: 1, PerPage: DefaultPerPage}

	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(perPageStr); err == nil && n >= 1 {
		if n > MaxPerPage {
			n = MaxPerPage
		}
		p.PerPage = n
	}

	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Envelope - liste uçlarının ortak cevap zarfı
func (p Page) Envelope(totalCount int64, results any) fiber.Map {
	return fiber.Map{
		"total_count":   totalCount,
		"current_page":  p.Page,
		"has_next_page": int64(p.Page*p.PerPage) < totalCount,
		"results":       results,
	}
}
