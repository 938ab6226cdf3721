// Package ingest sequences the pipeline for whole corpora: for each declared
// work it runs the parser, then streams the buffers to the store, then links
// the work into its collection.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/senkathir/sorkuvai/app/corpus"
	"github.com/senkathir/sorkuvai/app/parser"
	"github.com/senkathir/sorkuvai/app/store"
)

// WorkSpec declares one work of a corpus: its parser binding, its source
// files in parse order, and its position inside the corpus collection.
type WorkSpec struct {
	Binding parser.Binding
	Files   []string
	// SubCollection, when set, links the work into this child of the
	// corpus collection instead of the collection itself.
	SubCollection *corpus.Collection
}

// Corpus is an ordered list of works sharing one collection.
type Corpus struct {
	Name       string
	Collection corpus.Collection
	Works      []WorkSpec
}

type Orchestrator struct {
	store     store.Store
	sourceDir string
	log       *slog.Logger
}

func NewOrchestrator(st store.Store, sourceDir string, log *slog.Logger) *Orchestrator {
	return &Orchestrator{store: st, sourceDir: sourceDir, log: log}
}

// IngestCorpus ingests every work of the corpus in declared order. Per-work
// failures are recorded and skipped; the corpus is at-most-per-work atomic.
// An error is returned only when every work failed.
func (o *Orchestrator) IngestCorpus(ctx context.Context, c Corpus) error {
	collectionID, err := o.store.EnsureCollection(ctx, c.Collection)
	if err != nil {
		return fmt.Errorf("failed to ensure collection %q: %w", c.Collection.CollectionName, err)
	}

	failed := 0
	next := map[int64]int{}
	for _, ws := range c.Works {
		target := collectionID
		if ws.SubCollection != nil {
			sub := *ws.SubCollection
			parentID := collectionID
			sub.ParentCollectionID = &parentID
			target, err = o.store.EnsureCollection(ctx, sub)
			if err != nil {
				failed++
				o.log.Error("work ingestion failed",
					"corpus", c.Name,
					"work", ws.Binding.Work.WorkName,
					"error", err)
				continue
			}
		}
		if next[target] == 0 {
			next[target] = 1
		}
		n, err := o.IngestWork(ctx, target, next[target], ws)
		if err != nil {
			failed++
			o.log.Error("work ingestion failed",
				"corpus", c.Name,
				"work", ws.Binding.Work.WorkName,
				"error", err)
			// The failed work keeps its reserved slot.
			next[target]++
			continue
		}
		next[target] += n
	}

	o.log.Info("corpus ingestion finished",
		"corpus", c.Name,
		"works", len(c.Works),
		"failed", failed)
	if failed > 0 && failed == len(c.Works) {
		return fmt.Errorf("all %d works of corpus %q failed", failed, c.Name)
	}
	return nil
}

// IngestWork runs parse + load for one work spec. Nothing touches the store
// until the parse has fully succeeded; the load itself is one transaction.
// It returns the number of works linked: one, except for multi-work files,
// whose every author-work takes the next collection position.
func (o *Orchestrator) IngestWork(ctx context.Context, collectionID int64, position int, ws WorkSpec) (int, error) {
	name := ws.Binding.Work.WorkName
	if name != "" {
		exists, err := o.store.WorkExists(ctx, name)
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, fmt.Errorf("work %q already exists; delete it first, there is no update path", name)
		}
	}
	for _, file := range ws.Files {
		path := filepath.Join(o.sourceDir, file)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return 0, fmt.Errorf("source file %s does not exist", path)
			}
			return 0, fmt.Errorf("cannot read source file %s: %w", path, err)
		}
	}

	ids, err := o.store.NextIDs(ctx)
	if err != nil {
		return 0, err
	}

	engine := parser.New(ws.Binding, ids)
	for _, file := range ws.Files {
		if err := engine.ParseFile(filepath.Join(o.sourceDir, file)); err != nil {
			return 0, err
		}
	}
	res, err := engine.Finish()
	if err != nil {
		return 0, err
	}

	links := make([]corpus.WorkCollection, 0, len(res.Works))
	for i, w := range res.Works {
		links = append(links, corpus.WorkCollection{
			WorkCollectionID:     ids.NextWorkCollection(),
			WorkID:               w.WorkID,
			CollectionID:         collectionID,
			PositionInCollection: position + i,
			IsPrimary:            true,
		})
	}

	counts, err := o.store.Load(ctx, res, links)
	if err != nil {
		return 0, err
	}
	o.log.Info("work ingested",
		"work", res.Works[0].WorkName,
		"works", counts.Works,
		"sections", counts.Sections,
		"verses", counts.Verses,
		"lines", counts.Lines,
		"words", counts.Words)
	return len(res.Works), nil
}
