package api

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/rmedina-dev/inkwell-backend/database"
	"github.com/rmedina-dev/inkwell-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type sitemapHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     blogStore
	siteURL   string
}

func newSitemapHandler(blogs blogStore, siteURL string) sitemapHandler {
	logger := log.With().Str("handlerName", "sitemapHandler").Logger()

	return sitemapHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
		siteURL:   siteURL,
	}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// getSitemap serves the static pages plus one entry per blog, with lastmod
// taken from the blog's most recent timestamp.
func (h sitemapHandler) getSitemap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogs.FindAll(database.BlogFilter{})
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blogs", err))
			return
		}

		today := time.Now().Format("2006-01-02")
		urlSet := sitemapURLSet{
			Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
			URLs: []sitemapURL{
				{Loc: h.siteURL + "/", LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
				{Loc: h.siteURL + "/blogs", LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
			},
		}

		for _, blog := range blogs {
			lastMod := blog.UpdatedAt
			if lastMod.IsZero() {
				lastMod = blog.CreatedAt
			}
			urlSet.URLs = append(urlSet.URLs, sitemapURL{
				Loc:        h.siteURL + "/blog/" + blog.ID.String(),
				LastMod:    lastMod.Format("2006-01-02"),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}

		body, err := xml.MarshalIndent(urlSet, "", "  ")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Write([]byte(xml.Header))
		w.Write(body)
	}
}
