package store

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/shamim-001/portfolio-backend/models"
)

// FeaturedLimit caps how many records in a collection may carry the
// featured flag at once; the homepage highlights exactly three slots.
const FeaturedLimit = 3

// Store aggregates the collection repositories sharing one data directory.
type Store struct {
	projectRepo   *ProjectRepo
	caseStudyRepo *CaseStudyRepo
}

// New initializes a Store rooted at dataDir, one JSON file per collection.
// The directory itself is created lazily on first write.
func New(dataDir string) Store {
	return Store{
		projectRepo:   NewProjectRepo(filepath.Join(dataDir, "projects.json")),
		caseStudyRepo: NewCaseStudyRepo(filepath.Join(dataDir, "case-studies.json")),
	}
}

// Accessor methods for each repository

func (s Store) ProjectRepo() *ProjectRepo {
	return s.projectRepo
}

func (s Store) CaseStudyRepo() *CaseStudyRepo {
	return s.caseStudyRepo
}

// freshID draws random ids until one misses every taken id. A collision is
// vanishingly unlikely with 128-bit ids, but the contract checks anyway.
func freshID(taken map[uuid.UUID]struct{}) uuid.UUID {
	for {
		id := uuid.New()
		if _, exists := taken[id]; !exists {
			return id
		}
	}
}

// normalizeList keeps stored lists non-nil so they always encode as [].
// Duplicate entries are preserved; dedup is the caller's responsibility.
func normalizeList(l models.StringList) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
