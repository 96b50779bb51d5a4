package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/mediatekformation/internal/db"
	"github.com/mediatekformation/internal/domain"
	"github.com/mediatekformation/internal/validation"
)

// formationService implements the FormationService interface
type formationService struct {
	database *db.DB
	logger   *slog.Logger
	now      func() time.Time
}

// NewFormationService creates a new formation service
func NewFormationService(database *db.DB, logger *slog.Logger) domain.FormationService {
	return &formationService{
		database: database,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns every formation ordered by title, with all categories
func (s *formationService) List(ctx context.Context) (*domain.Listing, error) {
	spec := domain.DefaultSort()
	formations, err := s.database.FindAllFormationsOrderBy(ctx, spec.Column.Column, spec.Direction)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list formations", "error", err)
		return nil, domain.WrapDatabaseOperation("list formations", err)
	}

	return s.listing(ctx, formations)
}

// Sort lists formations ordered by an allow-listed field, optionally of a joined table
func (s *formationService) Sort(ctx context.Context, field, order, table string) (*domain.Listing, error) {
	spec, err := domain.ParseSort(field, order, table)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected sort parameters", "field", field, "order", order, "table", table)
		return nil, err
	}

	var formations []*db.Formation
	if spec.Column.Table == "" {
		formations, err = s.database.FindAllFormationsOrderBy(ctx, spec.Column.Column, spec.Direction)
	} else {
		formations, err = s.database.FindAllFormationsOrderByTable(ctx, spec.Column.Column, spec.Direction, spec.Column.Table)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to sort formations", "field", field, "table", table, "error", err)
		return nil, domain.WrapDatabaseOperation("sort formations", err)
	}

	return s.listing(ctx, formations)
}

// Search lists formations whose allow-listed field matches value
func (s *formationService) Search(ctx context.Context, field, value, table string) (*domain.Listing, error) {
	spec, err := domain.ParseSearch(field, value, table)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected search parameters", "field", field, "table", table)
		return nil, err
	}

	var formations []*db.Formation
	switch {
	case spec.Column.Search == domain.MatchExact:
		formations, err = s.database.FindFormationsByExactValueTable(ctx, spec.Column.Column, spec.Value, spec.Column.Table)
	case spec.Column.Table == "":
		formations, err = s.database.FindFormationsByContainValue(ctx, spec.Column.Column, spec.Value)
	default:
		formations, err = s.database.FindFormationsByContainValueTable(ctx, spec.Column.Column, spec.Value, spec.Column.Table)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search formations", "field", field, "table", table, "error", err)
		return nil, domain.WrapDatabaseOperation("search formations", err)
	}

	listing, err := s.listing(ctx, formations)
	if err != nil {
		return nil, err
	}
	listing.Field = spec.Column.Field
	listing.Table = spec.Column.Table
	listing.Value = spec.Value
	return listing, nil
}

// Get retrieves one formation
func (s *formationService) Get(ctx context.Context, id int64) (*db.Formation, error) {
	formation, err := s.database.GetFormation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapFormationNotFound(id, err)
		}
		s.logger.ErrorContext(ctx, "failed to get formation", "formationID", id, "error", err)
		return nil, domain.WrapDatabaseOperation("get formation", err)
	}
	return formation, nil
}

// Create validates the form and stores a new formation
func (s *formationService) Create(ctx context.Context, input domain.FormationInput) (*db.Formation, error) {
	formation, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.database.CreateFormation(ctx, formation); err != nil {
		s.logger.ErrorContext(ctx, "failed to create formation", "title", formation.Title, "error", err)
		return nil, domain.WrapDatabaseOperation("create formation", err)
	}

	s.logger.InfoContext(ctx, "formation created", "formationID", formation.ID, "title", formation.Title)
	return formation, nil
}

// Update validates the form and rewrites an existing formation
func (s *formationService) Update(ctx context.Context, id int64, input domain.FormationInput) (*db.Formation, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	formation, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	formation.ID = id

	if err := s.database.UpdateFormation(ctx, formation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapFormationNotFound(id, err)
		}
		s.logger.ErrorContext(ctx, "failed to update formation", "formationID", id, "error", err)
		return nil, domain.WrapDatabaseOperation("update formation", err)
	}

	s.logger.InfoContext(ctx, "formation updated", "formationID", id, "title", formation.Title)
	return formation, nil
}

// Delete removes exactly one formation
func (s *formationService) Delete(ctx context.Context, id int64) error {
	if err := s.database.DeleteFormation(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WrapFormationNotFound(id, err)
		}
		s.logger.ErrorContext(ctx, "failed to delete formation", "formationID", id, "error", err)
		return domain.WrapDatabaseOperation("delete formation", err)
	}

	s.logger.InfoContext(ctx, "formation deleted", "formationID", id)
	return nil
}

// FormOptions lists the playlists and categories offered by the forms
func (s *formationService) FormOptions(ctx context.Context) (*domain.FormOptions, error) {
	playlists, err := s.database.ListPlaylists(ctx)
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list playlists", err)
	}
	categories, err := s.database.ListCategories(ctx)
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list categories", err)
	}
	return &domain.FormOptions{Playlists: playlists, Categories: categories}, nil
}

// listing completes a result set with the categories of the filter bar
func (s *formationService) listing(ctx context.Context, formations []*db.Formation) (*domain.Listing, error) {
	categories, err := s.database.ListCategories(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list categories", "error", err)
		return nil, domain.WrapDatabaseOperation("list categories", err)
	}
	return &domain.Listing{Formations: formations, Categories: categories}, nil
}

// build validates the form field by field, then checks that the referenced
// playlist and categories exist
func (s *formationService) build(ctx context.Context, input domain.FormationInput) (*db.Formation, error) {
	formation, fieldErrs := validation.ValidateFormationInput(input, s.now())
	if len(fieldErrs) > 0 {
		s.logger.WarnContext(ctx, "invalid formation form", "errors", fieldErrs.Encode())
		return nil, domain.WrapValidationError("formation", &domain.FormValidationError{Fields: fieldErrs})
	}

	fieldErrs = domain.FieldErrors{}

	playlist, err := s.database.GetPlaylist(ctx, formation.PlaylistID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		fieldErrs.Add(validation.FieldPlaylist, "playlist does not exist")
	case err != nil:
		return nil, domain.WrapDatabaseOperation("get playlist", err)
	default:
		formation.Playlist = playlist
	}

	if ids := formation.CategorieIDs(); len(ids) > 0 {
		categories, err := s.database.GetCategoriesByIDs(ctx, ids)
		if err != nil {
			return nil, domain.WrapDatabaseOperation("get categories", err)
		}
		if len(categories) != len(ids) {
			fieldErrs.Add(validation.FieldCategories, "categories contain an unknown value")
		} else {
			formation.Categories = categories
		}
	}

	if len(fieldErrs) > 0 {
		s.logger.WarnContext(ctx, "formation form references unknown data", "errors", fieldErrs.Encode())
		return nil, domain.WrapValidationError("formation", &domain.FormValidationError{Fields: fieldErrs})
	}

	return formation, nil
}
