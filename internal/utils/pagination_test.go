package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/todos"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults when absent", "", 1, 10},
		{"defaults when empty", "?page=&limit=", 1, 10},
		{"explicit values", "?page=3&limit=25", 3, 25},
		{"zero page falls back", "?page=0", 1, 10},
		{"negative limit falls back", "?limit=-5", 1, 10},
		{"limit above cap falls back", "?limit=500", 1, 10},
		{"malformed values fall back", "?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsFor(t, tt.query)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	resp := NewPaginationResponse(2, 2, 5)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.Limit)
	assert.EqualValues(t, 5, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)

	assert.Equal(t, 0, NewPaginationResponse(1, 10, 0).TotalPages)
	assert.Equal(t, 1, NewPaginationResponse(1, 10, 10).TotalPages)
}
