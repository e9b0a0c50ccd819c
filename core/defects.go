package core

import (
	"context"

	"github.com/huangsam/workbench/core/agg"
	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
)

// DefectService aggregates the records of a DefectSource on every call.
type DefectService struct {
	source contract.DefectSource
}

// NewDefectService creates a service backed by source.
func NewDefectService(source contract.DefectSource) *DefectService {
	return &DefectService{source: source}
}

// Aggregate groups the current records by company.
func (s *DefectService) Aggregate(ctx context.Context) (*schema.AggregateResult, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, asStorageError("read", err)
	}
	return agg.AggregateDefects(records), nil
}
