package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/db"
	"github.com/mediatekformation/internal/domain"
	"github.com/mediatekformation/internal/httputil"
	"github.com/mediatekformation/internal/paths"
)

const listTitle = "Formations"

// listFormations renders every formation ordered by title
func (s *Server) listFormations(c *gin.Context) {
	listing, err := s.formationService.List(c.Request.Context())
	if err != nil {
		s.handleServiceError(c, "list formations", err)
		return
	}

	c.HTML(http.StatusOK, "formations.html", listPage{Title: listTitle, Listing: listing})
}

// sortFormations renders the list ordered by an allow-listed field
func (s *Server) sortFormations(c *gin.Context) {
	listing, err := s.formationService.Sort(c.Request.Context(), c.Param("champ"), c.Param("ordre"), httputil.TableParam(c))
	if err != nil {
		s.handleServiceError(c, "sort formations", err)
		return
	}

	c.HTML(http.StatusOK, "formations.html", listPage{Title: listTitle, Listing: listing})
}

// searchFormations renders the list filtered on an allow-listed field
func (s *Server) searchFormations(c *gin.Context) {
	value := httputil.SearchValue(c, constants.SearchParam)

	listing, err := s.formationService.Search(c.Request.Context(), c.Param("champ"), value, httputil.TableParam(c))
	if err != nil {
		s.handleServiceError(c, "search formations", err)
		return
	}

	c.HTML(http.StatusOK, "formations.html", listPage{Title: listTitle, Listing: listing})
}

// deleteFormation removes one formation and goes back to the list
func (s *Server) deleteFormation(c *gin.Context) {
	id, err := httputil.ParseFormationID(c)
	if err != nil {
		s.handleServiceError(c, "delete formation", domain.NewDomainError(domain.ErrFormationNotFound.Code, domain.ErrFormationNotFound.Message, err))
		return
	}

	if err := s.formationService.Delete(c.Request.Context(), id); err != nil {
		s.handleServiceError(c, "delete formation", err)
		return
	}

	c.Redirect(http.StatusFound, paths.Admin)
}

// editFormation renders the edit form (GET) or applies it (POST)
func (s *Server) editFormation(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := httputil.ParseFormationID(c)
	if err != nil {
		s.handleServiceError(c, "edit formation", domain.NewDomainError(domain.ErrFormationNotFound.Code, domain.ErrFormationNotFound.Message, err))
		return
	}

	formation, err := s.formationService.Get(ctx, id)
	if err != nil {
		s.handleServiceError(c, "edit formation", err)
		return
	}

	page := formPage{
		Title:     "Modifier une formation",
		Action:    paths.FormationEdit(id),
		Formation: formation,
		Input:     domain.InputFromFormation(formation),
	}

	if c.Request.Method == http.MethodPost {
		// Unchecked categories are absent from the body
		page.Input = domain.FormationInput{}
		if !s.bindForm(c, &page.Input) {
			return
		}
		_, err := s.formationService.Update(ctx, id, page.Input)
		if err == nil {
			c.Redirect(http.StatusFound, paths.Admin)
			return
		}
		if !s.formErrors(c, &page, "update formation", err) {
			return
		}
	}

	s.renderForm(c, page)
}

// addFormation renders the empty form (GET) or stores a new formation (POST)
func (s *Server) addFormation(c *gin.Context) {
	page := formPage{
		Title:  "Ajouter une formation",
		Action: paths.FormationAdd,
		Input:  domain.InputFromFormation(db.NewFormation()),
	}

	if c.Request.Method == http.MethodPost {
		page.Input = domain.FormationInput{}
		if !s.bindForm(c, &page.Input) {
			return
		}
		_, err := s.formationService.Create(c.Request.Context(), page.Input)
		if err == nil {
			c.Redirect(http.StatusFound, paths.Admin)
			return
		}
		if !s.formErrors(c, &page, "create formation", err) {
			return
		}
	}

	s.renderForm(c, page)
}

// bindForm decodes the submitted form into input
func (s *Server) bindForm(c *gin.Context, input *domain.FormationInput) bool {
	if err := c.ShouldBind(input); err != nil {
		s.logger.WarnContext(c.Request.Context(), "invalid form submission", "error", err)
		s.renderError(c, http.StatusBadRequest, "Formulaire invalide")
		return false
	}
	return true
}

// formErrors attaches field errors to the page. Any other error is rendered
// as an error page and false is returned.
func (s *Server) formErrors(c *gin.Context, page *formPage, operation string, err error) bool {
	var formErr *domain.FormValidationError
	if !errors.As(err, &formErr) {
		s.handleServiceError(c, operation, err)
		return false
	}
	page.Errors = formErr.Fields
	return true
}

// renderForm renders the add/edit form, with 422 when it carries errors
func (s *Server) renderForm(c *gin.Context, page formPage) {
	options, err := s.formationService.FormOptions(c.Request.Context())
	if err != nil {
		s.handleServiceError(c, "load form options", err)
		return
	}
	page.Options = options

	status := http.StatusOK
	if len(page.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "formation_form.html", page)
}
