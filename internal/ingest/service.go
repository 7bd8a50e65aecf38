package ingest

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"cetpredict/internal"
	"cetpredict/internal/branchmap"
	"cetpredict/internal/cutoff"
)

// ErrEmptyBatch means a build yielded zero valid rows. The generation is
// discarded; any prior generation keeps serving.
var ErrEmptyBatch = errors.New("ingestion batch produced no valid records")

// Service runs one ingestion batch end to end: raw rows → normalizer →
// index build → atomic generation swap.
type Service struct {
	store *cutoff.Store
	norm  *Normalizer
	log   *logrus.Logger
}

func NewService(store *cutoff.Store, branches *branchmap.Map, log *logrus.Logger) *Service {
	return &Service{store: store, norm: NewNormalizer(branches), log: log}
}

func (s *Service) Rebuild(rows []internal.RawRow) (internal.IngestReport, error) {
	records, report := s.norm.Batch(rows)
	if len(records) == 0 {
		s.log.WithFields(logrus.Fields{"total": report.Total, "rejected": report.Rejected}).
			Warn("empty ingestion batch, keeping previous generation")
		return report, ErrEmptyBatch
	}

	idx := cutoff.BuildIndex(records)
	gen := s.store.Swap(idx)
	s.log.WithFields(logrus.Fields{
		"generation": gen,
		"records":    idx.Len(),
		"accepted":   report.Accepted,
		"rejected":   report.Rejected,
		"collapsed":  report.Collapsed,
	}).Info("cutoff generation swapped")
	return report, nil
}

func (s *Service) RebuildFromDir(ctx context.Context, dir string) (internal.IngestReport, error) {
	rows, err := LoadDir(ctx, dir, s.log)
	if err != nil {
		return internal.IngestReport{}, err
	}
	return s.Rebuild(rows)
}

func (s *Service) RebuildFromPostgres(ctx context.Context, dsn string) (internal.IngestReport, error) {
	rows, err := LoadPostgres(ctx, dsn)
	if err != nil {
		return internal.IngestReport{}, err
	}
	return s.Rebuild(rows)
}
