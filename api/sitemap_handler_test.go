package api

import (
	"net/http"
	"testing"

	"github.com/rmedina-dev/inkwell-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	env := newTestEnv()
	_, token := env.addUser("Alice", "alice@example.com")

	blog := createBlog(t, env, token, map[string]any{
		"title": "T", "category": models.CategoryTravel, "content": "C",
	})

	rec := doJSON(t, env.router, http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	body := rec.Body.String()
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>http://localhost:3000/</loc>")
	assert.Contains(t, body, "<loc>http://localhost:3000/blogs</loc>")
	assert.Contains(t, body, "<loc>http://localhost:3000/blog/"+blog.ID.String()+"</loc>")
}

func TestUploadImage_Unconfigured(t *testing.T) {
	env := newTestEnv()
	_, token := env.addUser("Alice", "alice@example.com")

	rec := doJSON(t, env.router, http.MethodPost, "/blogs/uploads", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Still behind authentication
	rec = doJSON(t, env.router, http.MethodPost, "/blogs/uploads", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
