package analysis

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc/pool"

	"recon-analysis-backend/internal/models"
	"recon-analysis-backend/internal/services/catalog"
)

// ErrJoinFailed means every per-type fetch in a join errored; with no data at
// all the join result would be meaningless.
var ErrJoinFailed = errors.New("all record type fetches failed")

type fetchOutcome struct {
	recordType catalog.RecordType
	records    []models.JournalRecord
	err        error
}

// joinByKey fans out one fetch per record type that declares a unique-key
// field and buckets the rows that match keyValue by type id. Failure of a
// single fetch is absorbed: the type is omitted and the join proceeds with
// partial data, since a caller analyzing one key cares whether some
// counterpart exists, not about a complete inventory. Types with zero matches
// are omitted too - the map is sparse, not zero-filled.
func (s *Service) joinByKey(ctx context.Context, snap *catalog.Snapshot, keyValue string, bounds *DateRange) (map[string][]models.JournalRecord, error) {
	keyed := make([]catalog.RecordType, 0, len(snap.RecordTypes))
	for _, rt := range snap.RecordTypes {
		if rt.UniqueKeyField != "" {
			keyed = append(keyed, rt)
		}
	}
	if len(keyed) == 0 {
		return map[string][]models.JournalRecord{}, nil
	}

	workers := s.engine.JoinWorkers
	if workers < 1 {
		workers = 1
	}
	p := pool.New().WithMaxGoroutines(workers)
	results := make(chan fetchOutcome, len(keyed))

	for _, rt := range keyed {
		rt := rt
		p.Go(func() {
			fetchCtx, cancel := context.WithTimeout(ctx, s.engine.FetchTimeout())
			defer cancel()
			records, err := s.journal.FetchByUniqueKey(fetchCtx, rt.ID, rt.UniqueKeyField, keyValue, bounds)
			results <- fetchOutcome{recordType: rt, records: records, err: err}
		})
	}

	p.Wait()
	close(results)

	joined := make(map[string][]models.JournalRecord)
	failures := 0
	for out := range results {
		if out.err != nil {
			failures++
			s.log.Warn("record type fetch failed, excluding from join",
				"record_type_id", out.recordType.ID,
				"record_type", out.recordType.Name,
				"err", out.err,
			)
			continue
		}
		if len(out.records) == 0 {
			continue
		}
		joined[out.recordType.ID] = out.records
	}

	if failures == len(keyed) {
		return nil, ErrJoinFailed
	}
	return joined, nil
}
