package repository

import (
	"context"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// AWSRepository defines the interface for the snapshot collection step.
// The analytical core never depends on it; only the collect command does.
type AWSRepository interface {
	// SetProfile selects the AWS profile used for subsequent calls.
	SetProfile(profile string)

	// Identity Operations
	GetAccountIdentity(ctx context.Context) (accountID, accountAlias, userARN string, err error)

	// Region Operations
	GetAccessibleRegions(ctx context.Context) ([]string, error)

	// Collection Operations
	CollectRegion(ctx context.Context, region string) (entity.RegionSnapshot, error)
	CollectSnapshot(ctx context.Context, regions []string, progress func(region string)) (*entity.Snapshot, error)
}
