package http

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/db"
	"github.com/mediatekformation/internal/domain"
	"github.com/mediatekformation/internal/paths"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html static/*
var assets embed.FS

// goldmark escapes raw HTML unless html.WithUnsafe is set
var markdown = goldmark.New()

// Page data handed to the templates

type listPage struct {
	Title   string
	Listing *domain.Listing
}

type formPage struct {
	Title     string
	Action    string
	Formation *db.Formation // nil on the add form
	Input     domain.FormationInput
	Errors    domain.FieldErrors
	Options   *domain.FormOptions
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(assets, "templates/*.html")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown":         renderMarkdown,
		"date":             formatDate,
		"thumbnail":        thumbnailURL,
		"sortPath":         paths.Sort,
		"searchPath":       paths.Search,
		"editPath":         paths.FormationEdit,
		"deletePath":       paths.FormationDelete,
		"adminPath":        func() string { return paths.Admin },
		"addPath":          func() string { return paths.FormationAdd },
		"loginPath":        func() string { return paths.OAuthLogin },
		"logoutPath":       func() string { return paths.Logout },
		"searchParam":      func() string { return constants.SearchParam },
		"titleMaxLength":   func() int { return constants.MaxTitleLength },
		"videoIDMaxLength": func() int { return constants.MaxVideoIDLength },
	}
}

func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func thumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://i.ytimg.com/vi/" + videoID + "/default.jpg"
}
