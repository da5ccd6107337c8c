package store

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/models"
)

// ProjectInput carries the caller-settable fields for creating a project.
type ProjectInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Link        string            `json:"link"`
	Tags        models.StringList `json:"tags"`
	Categories  models.StringList `json:"categories"`
	Featured    bool              `json:"featured"`
}

// ProjectPatch carries a partial update; nil fields keep their stored value.
// There are deliberately no id or createdAt fields here, so neither can ever
// change through an update.
type ProjectPatch struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Link        *string            `json:"link"`
	Tags        *models.StringList `json:"tags"`
	Categories  *models.StringList `json:"categories"`
	Featured    *bool              `json:"featured"`
}

type ProjectRepo struct {
	col *collection[models.Project]
	now func() time.Time
}

func NewProjectRepo(path string) *ProjectRepo {
	return &ProjectRepo{
		col: newCollection[models.Project](path),
		now: time.Now,
	}
}

// FindAll returns every project, creating the collection file on first read.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	if err := r.col.ensure(ctx); err != nil {
		return nil, err
	}
	return r.col.load(ctx)
}

// FindByID returns the project with the given id.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	projects, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, errs.NewNotFound("project")
}

// Create validates the input, assigns a fresh id and timestamps, and
// persists the grown collection. A fourth featured project is rejected
// before anything is written.
func (r *ProjectRepo) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if err := validateProject(input.Title, input.Description, input.Image, input.Link); err != nil {
		return nil, err
	}

	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	projects, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	if input.Featured && countFeaturedProjects(projects, uuid.Nil) >= FeaturedLimit {
		return nil, errs.NewFeatureLimitError("projects", FeaturedLimit)
	}

	taken := make(map[uuid.UUID]struct{}, len(projects))
	for i := range projects {
		taken[projects[i].ID] = struct{}{}
	}

	now := r.now().UTC()
	project := models.Project{
		ID:          freshID(taken),
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Link:        input.Link,
		Tags:        normalizeList(input.Tags),
		Categories:  normalizeList(input.Categories),
		Featured:    input.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	projects = append(projects, project)
	if err := r.col.save(ctx, projects); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update merges the patch over the stored project, re-validates the result
// and refreshes updatedAt. The featured cap excludes the project itself, so
// re-featuring an already-featured project never self-rejects.
func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*models.Project, error) {
	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	projects, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errs.NewNotFound("project")
	}

	merged := projects[idx]
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Image != nil {
		merged.Image = *patch.Image
	}
	if patch.Link != nil {
		merged.Link = *patch.Link
	}
	if patch.Tags != nil {
		merged.Tags = normalizeList(*patch.Tags)
	}
	if patch.Categories != nil {
		merged.Categories = normalizeList(*patch.Categories)
	}
	if patch.Featured != nil {
		merged.Featured = *patch.Featured
	}

	if err := validateProject(merged.Title, merged.Description, merged.Image, merged.Link); err != nil {
		return nil, err
	}

	if merged.Featured && !projects[idx].Featured &&
		countFeaturedProjects(projects, id) >= FeaturedLimit {
		return nil, errs.NewFeatureLimitError("projects", FeaturedLimit)
	}

	merged.UpdatedAt = r.now().UTC()
	projects[idx] = merged

	if err := r.col.save(ctx, projects); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the project with the given id and persists the reduced
// collection. No tombstone is kept.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.col.lock(ctx); err != nil {
		return err
	}
	defer r.col.unlock()

	projects, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Project, 0, len(projects))
	for _, project := range projects {
		if project.ID != id {
			kept = append(kept, project)
		}
	}
	if len(kept) == len(projects) {
		return errs.NewNotFound("project")
	}

	return r.col.save(ctx, kept)
}

func countFeaturedProjects(projects []models.Project, exclude uuid.UUID) int {
	count := 0
	for i := range projects {
		if projects[i].Featured && projects[i].ID != exclude {
			count++
		}
	}
	return count
}

func validateProject(title, description, image, link string) error {
	var fields []errs.FieldError
	if strings.TrimSpace(title) == "" {
		fields = append(fields, errs.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(description) == "" {
		fields = append(fields, errs.FieldError{Field: "description", Message: "Description is required"})
	}
	if strings.TrimSpace(image) == "" {
		fields = append(fields, errs.FieldError{Field: "image", Message: "Image is required"})
	}
	if strings.TrimSpace(link) == "" {
		fields = append(fields, errs.FieldError{Field: "link", Message: "Link is required"})
	} else if parsed, err := url.Parse(link); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		fields = append(fields, errs.FieldError{Field: "link", Message: "Must be a valid URL"})
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}
