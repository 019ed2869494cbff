package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	g "github.com/reoring/goclean/dsl"
	ginmw "github.com/reoring/goclean/middleware/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	schema := g.Dict().Key("n", g.Int().Min(1))
	r.POST("/n", ginmw.Clean(schema), func(c *gin.Context) {
		v, ok := ginmw.Cleaned(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		ginmw.Respond(c, http.StatusCreated, map[string]any{"got": v})
	})
	return r
}

func TestClean_PassesCleanedValue(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/n", strings.NewReader(`{"n": 3}`))
	newRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"got":{"n":3}}`, rec.Body.String())
}

func TestClean_AbortsWithIssues(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/n", strings.NewReader(`{"n": 0}`))
	newRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/n"`)
	assert.Contains(t, rec.Body.String(), `"code":"too_small"`)
}

func TestRespond_Gzip(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/n", strings.NewReader(`{"n": 3}`))
	req.Header.Set("Accept-Encoding", "gzip;q=0.5, br")
	newRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
}
