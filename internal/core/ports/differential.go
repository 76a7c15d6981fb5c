package ports

import "go.trai.ch/deltamake/internal/core/domain"

// DifferentialStore persists a DifferentialRecord to and from a JSON file.
type DifferentialStore interface {
	Load(path string) (*domain.DifferentialRecord, error)
	Save(path string, record *domain.DifferentialRecord) error
}
