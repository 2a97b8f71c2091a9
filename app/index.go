package app

import (
	"log/slog"
	"sync"

	"github.com/ayoisaiah/tracklog/internal/tracklog"
	"github.com/ayoisaiah/tracklog/store"
)

// indexer adds every exported track, recovered ones included, to the
// database. Writes happen off the recorder lock.
type indexer struct {
	db       store.DB
	category string
	wg       sync.WaitGroup
}

func newIndexer(db store.DB, category string) *indexer {
	return &indexer{
		db:       db,
		category: category,
	}
}

func toRecord(exp *tracklog.ExportedTrack, category string) *store.TrackRecord {
	return &store.TrackRecord{
		Name:       exp.Meta.Name,
		Path:       exp.Path,
		Category:   category,
		Generation: exp.Generation.String(),
		StartTime:  exp.Meta.Start,
		Duration:   exp.Duration,
		Points:     exp.Points,
		Distance:   exp.Distance,
		MaxSpeed:   exp.MaxSpeed,
		AvgSpeed:   exp.AvgSpeed,
		Recovered:  exp.Recovered,
	}
}

func (i *indexer) Notify(e tracklog.Event) {
	if e.Kind != tracklog.ExportDone || e.Export == nil {
		return
	}

	rec := toRecord(e.Export, i.category)

	i.wg.Add(1)

	go func() {
		defer i.wg.Done()

		if err := i.db.SaveTrack(rec); err != nil {
			slog.Error(
				"indexing exported track failed",
				slog.String("path", rec.Path),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until pending writes are done.
func (i *indexer) Wait() {
	i.wg.Wait()
}
