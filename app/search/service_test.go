package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senkathir/sorkuvai/app/corpus"
)

type fakeSearchStore struct {
	matches     []Match
	summary     []WordSummary
	works       []corpus.Work
	collections []corpus.Collection
	verse       *VerseDetail
	err         error

	worksCalls       int
	collectionsCalls int
}

var _ SearchStore = &fakeSearchStore{}

func (f *fakeSearchStore) Search(ctx context.Context, p Params) ([]Match, error) {
	return f.matches, f.err
}

func (f *fakeSearchStore) Summarize(ctx context.Context, p Params) ([]WordSummary, error) {
	return f.summary, f.err
}

func (f *fakeSearchStore) Works(ctx context.Context, sortBy string) ([]corpus.Work, error) {
	f.worksCalls++
	return f.works, f.err
}

func (f *fakeSearchStore) Verse(ctx context.Context, verseID int64) (*VerseDetail, error) {
	return f.verse, f.err
}

func (f *fakeSearchStore) Collections(ctx context.Context) ([]corpus.Collection, error) {
	f.collectionsCalls++
	return f.collections, f.err
}

func TestService_SearchAssemblesResponse(t *testing.T) {
	store := &fakeSearchStore{
		matches: []Match{{WordID: 1, WordText: "கடல்", WorkName: "Kurunthogai"}},
		summary: []WordSummary{{WordText: "கடல்", Occurrences: 1}},
	}
	s := NewService(store)

	resp, err := s.Search(context.Background(), Params{Query: "கடல்"})
	require.NoError(t, err)
	assert.Equal(t, "கடல்", resp.Query)
	assert.Len(t, resp.Matches, 1)
	assert.Len(t, resp.Summary, 1)
	assert.Equal(t, DefaultLimit, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

func TestService_SearchRejectsBadParams(t *testing.T) {
	s := NewService(&fakeSearchStore{})

	_, err := s.Search(context.Background(), Params{Query: "கடல்", MatchType: "fuzzy"})
	assert.Error(t, err)
}

func TestService_WorksCached(t *testing.T) {
	store := &fakeSearchStore{
		works: []corpus.Work{{WorkID: 1, WorkName: "Thirukkural"}},
	}
	s := NewService(store)

	for i := 0; i < 3; i++ {
		works, err := s.Works(context.Background(), SortAlphabetical)
		require.NoError(t, err)
		require.Len(t, works, 1)
	}
	assert.Equal(t, 1, store.worksCalls)

	// A different sort mode is a separate cache entry.
	_, err := s.Works(context.Background(), SortCanonical)
	require.NoError(t, err)
	assert.Equal(t, 2, store.worksCalls)
}

func TestService_WorksRejectsUnknownSort(t *testing.T) {
	s := NewService(&fakeSearchStore{})

	_, err := s.Works(context.Background(), "by_mood")
	assert.Error(t, err)
}

func TestService_WorksStoreErrorNotCached(t *testing.T) {
	store := &fakeSearchStore{err: errors.New("connection refused")}
	s := NewService(store)

	_, err := s.Works(context.Background(), SortAlphabetical)
	require.Error(t, err)

	store.err = nil
	store.works = []corpus.Work{{WorkID: 1}}
	works, err := s.Works(context.Background(), SortAlphabetical)
	require.NoError(t, err)
	assert.Len(t, works, 1)
}

func TestService_CollectionTree(t *testing.T) {
	parent := int64(1)
	store := &fakeSearchStore{
		collections: []corpus.Collection{
			{CollectionID: 1, CollectionName: "sangam"},
			{CollectionID: 2, CollectionName: "ettuthogai", ParentCollectionID: &parent},
			{CollectionID: 3, CollectionName: "pathupattu", ParentCollectionID: &parent},
			{CollectionID: 4, CollectionName: "thirumurai"},
		},
	}
	s := NewService(store)

	roots, err := s.CollectionTree(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "sangam", roots[0].CollectionName)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "ettuthogai", roots[0].Children[0].CollectionName)
	assert.Equal(t, "thirumurai", roots[1].CollectionName)
	assert.Empty(t, roots[1].Children)

	// Tree is built from the cached collection list.
	_, err = s.CollectionTree(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.collectionsCalls)
}

func TestService_CollectionTreeOrphanBecomesRoot(t *testing.T) {
	missing := int64(99)
	store := &fakeSearchStore{
		collections: []corpus.Collection{
			{CollectionID: 5, CollectionName: "stray", ParentCollectionID: &missing},
		},
	}
	s := NewService(store)

	roots, err := s.CollectionTree(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "stray", roots[0].CollectionName)
}
