package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, rawQuery string) PageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return PageParamsFromQuery(c)
}

func TestPageParamsDefaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
}

func TestPageParamsFromQuery(t *testing.T) {
	p := paramsFor(t, "page=3&limit=25")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, int64(50), p.Skip())
}

func TestPageParamsIgnoresGarbage(t *testing.T) {
	p := paramsFor(t, "page=-2&limit=abc")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
}

func TestPageParamsCapsLimit(t *testing.T) {
	p := paramsFor(t, "limit=5000")
	assert.Equal(t, 10, p.Limit)
}

func TestPages(t *testing.T) {
	p := PageParams{Page: 1, Limit: 10}
	assert.Equal(t, int64(0), p.Pages(0))
	assert.Equal(t, int64(1), p.Pages(10))
	assert.Equal(t, int64(2), p.Pages(11))
	assert.Equal(t, int64(5), p.Pages(50))
}
