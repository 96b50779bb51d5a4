package paths

import (
	"net/url"
	"strconv"
)

// Route paths shared by the router, the handlers and the templates.

const (
	Admin         = "/admin"
	FormationAdd  = "/admin/add"
	OAuthLogin    = "/oauth/login"
	OAuthCallback = "/oauth/callback"
	Logout        = "/logout"
	Health        = "/health"
	Static        = "/static"
)

func FormationEdit(id int64) string   { return "/admin/edit/" + strconv.FormatInt(id, 10) }
func FormationDelete(id int64) string { return "/admin/del.formation/" + strconv.FormatInt(id, 10) }

// Sort builds the listing path ordered by field, with an optional table alias
func Sort(field, order, table string) string {
	p := "/admin/formations/tri/" + url.PathEscape(field) + "/" + url.PathEscape(order)
	if table != "" {
		p += "/" + url.PathEscape(table)
	}
	return p
}

// Search builds the path the filter forms post to
func Search(field, table string) string {
	p := "/admin/formations/recherche/" + url.PathEscape(field)
	if table != "" {
		p += "/" + url.PathEscape(table)
	}
	return p
}
