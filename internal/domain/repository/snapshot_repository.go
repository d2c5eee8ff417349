package repository

import (
	"context"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// SnapshotRepository defines the interface for loading the collected
// snapshot document. Implementations are expected to cache the loaded
// snapshot for a short window so repeated analysis passes reuse it.
type SnapshotRepository interface {
	Load(ctx context.Context) (*entity.Snapshot, error)

	// SetPath points the repository at a different data file, dropping any
	// cached snapshot when the path changes.
	SetPath(path string)
}
