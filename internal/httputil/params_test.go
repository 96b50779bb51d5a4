package httputil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(method, target string, form url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	return c
}

func TestParseFormationID(t *testing.T) {
	c := newContext(http.MethodGet, "/admin/edit/12", nil)
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	id, err := ParseFormationID(c)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "douze"}}
	_, err = ParseFormationID(c)
	assert.Error(t, err)
}

func TestSearchValue(t *testing.T) {
	c := newContext(http.MethodPost, "/admin/formations/recherche/title?recherche=query", url.Values{"recherche": {"form"}})
	assert.Equal(t, "form", SearchValue(c, "recherche"))

	c = newContext(http.MethodGet, "/admin/formations/recherche/title?recherche=query", nil)
	assert.Equal(t, "query", SearchValue(c, "recherche"))

	c = newContext(http.MethodGet, "/admin/formations/recherche/title", nil)
	assert.Equal(t, "", SearchValue(c, "recherche"))
}
