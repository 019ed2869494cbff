package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goclean/codec"
	g "github.com/reoring/goclean/dsl"
	echomw "github.com/reoring/goclean/middleware/echo"
)

func newEcho() *echo.Echo {
	e := echo.New()
	schema := g.Dict().Key("tags", g.List().Each(g.String().MinLength(1)))
	e.POST("/tags", func(c echo.Context) error {
		v, ok := echomw.Cleaned(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return echomw.Respond(c, http.StatusOK, v)
	}, echomw.Clean(schema))
	return e
}

func TestClean_PassesCleanedValue(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"tags": ["a", "b"]}`))
	newEcho().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tags":["a","b"]}`, rec.Body.String())
}

func TestClean_RejectsWithPointer(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"tags": ["a", ""]}`))
	newEcho().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/tags/1"`)
}

func TestRespond_ZstdRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"tags": ["z"]}`))
	req.Header.Set("Accept-Encoding", "zstd")
	newEcho().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "zstd", rec.Header().Get("Content-Encoding"))
	raw, err := codec.DecodeData(rec.Body.Bytes(), "zstd")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":["z"]}`, string(raw))
}
