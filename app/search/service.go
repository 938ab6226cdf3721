package search

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/senkathir/sorkuvai/app/corpus"
)

// Service validates parameters and answers lookup requests. Work and
// collection listings change only on ingestion, so they are cached with a
// short TTL.
type Service struct {
	store SearchStore
	cache *cache.Cache
}

func NewService(store SearchStore) *Service {
	return &Service{
		store: store,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) Search(ctx context.Context, p Params) (*Response, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	matches, err := s.store.Search(ctx, p)
	if err != nil {
		return nil, err
	}
	summary, err := s.store.Summarize(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Response{
		Query:   p.Query,
		Matches: matches,
		Summary: summary,
		Limit:   p.Limit,
		Offset:  p.Offset,
	}, nil
}

func (s *Service) Works(ctx context.Context, sortBy string) ([]corpus.Work, error) {
	if sortBy == "" {
		sortBy = SortAlphabetical
	}
	switch sortBy {
	case SortAlphabetical, SortCanonical, SortChronological:
	default:
		return nil, fmt.Errorf("unknown works sort mode %q", sortBy)
	}

	key := "works:" + sortBy
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]corpus.Work), nil
	}
	works, err := s.store.Works(ctx, sortBy)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, works, cache.DefaultExpiration)
	return works, nil
}

func (s *Service) Verse(ctx context.Context, verseID int64) (*VerseDetail, error) {
	return s.store.Verse(ctx, verseID)
}

func (s *Service) Collections(ctx context.Context) ([]corpus.Collection, error) {
	if cached, ok := s.cache.Get("collections"); ok {
		return cached.([]corpus.Collection), nil
	}
	collections, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set("collections", collections, cache.DefaultExpiration)
	return collections, nil
}

// CollectionNode is one collection with its children, for the tree view.
type CollectionNode struct {
	corpus.Collection
	Children []*CollectionNode `json:"children,omitempty"`
}

// CollectionTree arranges the flat collection list into its parent forest.
func (s *Service) CollectionTree(ctx context.Context) ([]*CollectionNode, error) {
	collections, err := s.Collections(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*CollectionNode, len(collections))
	for _, c := range collections {
		nodes[c.CollectionID] = &CollectionNode{Collection: c}
	}
	var roots []*CollectionNode
	for _, c := range collections {
		node := nodes[c.CollectionID]
		if c.ParentCollectionID != nil {
			if parent, ok := nodes[*c.ParentCollectionID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}
