package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/models"
)

// CaseStudyInput carries the caller-settable fields for creating a case study.
type CaseStudyInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Industry    string            `json:"industry"`
	Challenge   string            `json:"challenge"`
	Solution    string            `json:"solution"`
	Results     []models.Metric   `json:"results"`
	Categories  models.StringList `json:"categories"`
	Featured    bool              `json:"featured"`
	Content     string            `json:"content"`
}

// CaseStudyPatch carries a partial update; nil fields keep their stored value.
type CaseStudyPatch struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Industry    *string            `json:"industry"`
	Challenge   *string            `json:"challenge"`
	Solution    *string            `json:"solution"`
	Results     *[]models.Metric   `json:"results"`
	Categories  *models.StringList `json:"categories"`
	Featured    *bool              `json:"featured"`
	Content     *string            `json:"content"`
}

type CaseStudyRepo struct {
	col *collection[models.CaseStudy]
	now func() time.Time
}

func NewCaseStudyRepo(path string) *CaseStudyRepo {
	return &CaseStudyRepo{
		col: newCollection[models.CaseStudy](path),
		now: time.Now,
	}
}

// FindAll returns every case study, creating the collection file on first read.
func (r *CaseStudyRepo) FindAll(ctx context.Context) ([]models.CaseStudy, error) {
	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	if err := r.col.ensure(ctx); err != nil {
		return nil, err
	}
	return r.col.load(ctx)
}

// FindByID returns the case study with the given id.
func (r *CaseStudyRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.CaseStudy, error) {
	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	studies, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range studies {
		if studies[i].ID == id {
			return &studies[i], nil
		}
	}
	return nil, errs.NewNotFound("case study")
}

// Create validates the input, assigns a fresh id and timestamps, and
// persists the grown collection.
func (r *CaseStudyRepo) Create(ctx context.Context, input CaseStudyInput) (*models.CaseStudy, error) {
	if err := validateCaseStudy(input.Title, input.Description, input.Image, input.Industry); err != nil {
		return nil, err
	}

	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	studies, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	if input.Featured && countFeaturedCaseStudies(studies, uuid.Nil) >= FeaturedLimit {
		return nil, errs.NewFeatureLimitError("case studies", FeaturedLimit)
	}

	taken := make(map[uuid.UUID]struct{}, len(studies))
	for i := range studies {
		taken[studies[i].ID] = struct{}{}
	}

	results := input.Results
	if results == nil {
		results = []models.Metric{}
	}

	now := r.now().UTC()
	study := models.CaseStudy{
		ID:          freshID(taken),
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Industry:    input.Industry,
		Challenge:   input.Challenge,
		Solution:    input.Solution,
		Results:     results,
		Categories:  normalizeList(input.Categories),
		Featured:    input.Featured,
		Content:     input.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	studies = append(studies, study)
	if err := r.col.save(ctx, studies); err != nil {
		return nil, err
	}
	return &study, nil
}

// Update merges the patch over the stored case study, re-validates the
// result and refreshes updatedAt. The featured cap excludes the case study
// itself, so re-featuring an already-featured one never self-rejects.
func (r *CaseStudyRepo) Update(ctx context.Context, id uuid.UUID, patch CaseStudyPatch) (*models.CaseStudy, error) {
	if err := r.col.lock(ctx); err != nil {
		return nil, err
	}
	defer r.col.unlock()

	studies, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range studies {
		if studies[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errs.NewNotFound("case study")
	}

	merged := studies[idx]
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Image != nil {
		merged.Image = *patch.Image
	}
	if patch.Industry != nil {
		merged.Industry = *patch.Industry
	}
	if patch.Challenge != nil {
		merged.Challenge = *patch.Challenge
	}
	if patch.Solution != nil {
		merged.Solution = *patch.Solution
	}
	if patch.Results != nil {
		merged.Results = *patch.Results
	}
	if patch.Categories != nil {
		merged.Categories = normalizeList(*patch.Categories)
	}
	if patch.Featured != nil {
		merged.Featured = *patch.Featured
	}
	if patch.Content != nil {
		merged.Content = *patch.Content
	}

	if err := validateCaseStudy(merged.Title, merged.Description, merged.Image, merged.Industry); err != nil {
		return nil, err
	}

	if merged.Featured && !studies[idx].Featured &&
		countFeaturedCaseStudies(studies, id) >= FeaturedLimit {
		return nil, errs.NewFeatureLimitError("case studies", FeaturedLimit)
	}

	merged.UpdatedAt = r.now().UTC()
	studies[idx] = merged

	if err := r.col.save(ctx, studies); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the case study with the given id and persists the reduced
// collection.
func (r *CaseStudyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.col.lock(ctx); err != nil {
		return err
	}
	defer r.col.unlock()

	studies, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.CaseStudy, 0, len(studies))
	for _, study := range studies {
		if study.ID != id {
			kept = append(kept, study)
		}
	}
	if len(kept) == len(studies) {
		return errs.NewNotFound("case study")
	}

	return r.col.save(ctx, kept)
}

func countFeaturedCaseStudies(studies []models.CaseStudy, exclude uuid.UUID) int {
	count := 0
	for i := range studies {
		if studies[i].Featured && studies[i].ID != exclude {
			count++
		}
	}
	return count
}

func validateCaseStudy(title, description, image, industry string) error {
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
	if strings.TrimSpace(industry) == "" {
		fields = append(fields, errs.FieldError{Field: "industry", Message: "Industry is required"})
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}
