package pagination_test

import (
	"testing"

	"eczane-backend/internal/pagination"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		page        string
		perPage     string
		wantPage    int
		wantPerPage int
	}{
		{"boş parametreler", "", "", 1, 20},
		{"geçerli değerler", "3", "50", 3, 50},
		{"üst sınır", "1", "500", 1, 100},
		{"sıfır sayfa", "0", "10", 1, 10},
		{"negatif sayfa", "-2", "10", 1, 10},
		{"sayı olmayan", "abc", "xyz", 1, 20},
		{"sıfır perPage", "2", "0", 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Parse(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Page{Page: 1, PerPage: 20}.Offset())
	assert.Equal(t, 40, pagination.Page{Page: 3, PerPage: 20}.Offset())
	assert.Equal(t, 25, pagination.Page{Page: 6, PerPage: 5}.Offset())
}

func TestEnvelope(t *testing.T) {
	p := pagination.Page{Page: 2, PerPage: 20}
	env := p.Envelope(45, []string{"a", "b"})

	assert.Equal(t, int64(45), env["total_count"])
	assert.Equal(t, 2, env["current_page"])
	assert.Equal(t, true, env["has_next_page"])
	assert.Equal(t, []string{"a", "b"}, env["results"])

	last := pagination.Page{Page: 3, PerPage: 20}
	env = last.Envelope(45, nil)
	assert.Equal(t, false, env["has_next_page"])
}
