package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senkathir/sorkuvai/app/corpus"
	"github.com/senkathir/sorkuvai/app/parser"
	"github.com/senkathir/sorkuvai/app/store"
)

type loadCall struct {
	result *parser.Result
	links  []corpus.WorkCollection
}

type fakeStore struct {
	existing    map[string]bool
	collections map[string]int64
	ensured     []corpus.Collection
	loads       []loadCall
	loadErr     error
}

var _ store.Store = &fakeStore{}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing:    map[string]bool{},
		collections: map[string]int64{},
	}
}

func (f *fakeStore) WorkExists(_ context.Context, name string) (bool, error) {
	return f.existing[name], nil
}

func (f *fakeStore) NextIDs(context.Context) (*corpus.IDSpace, error) {
	return &corpus.IDSpace{}, nil
}

func (f *fakeStore) EnsureCollection(_ context.Context, c corpus.Collection) (int64, error) {
	f.ensured = append(f.ensured, c)
	id, ok := f.collections[c.CollectionName]
	if !ok {
		id = int64(len(f.collections) + 1)
		f.collections[c.CollectionName] = id
	}
	return id, nil
}

func (f *fakeStore) Load(_ context.Context, res *parser.Result, links []corpus.WorkCollection) (*store.Counts, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.loads = append(f.loads, loadCall{result: res, links: links})
	return &store.Counts{
		Works:    int64(len(res.Works)),
		Sections: int64(len(res.Sections)),
		Verses:   int64(len(res.Verses)),
		Lines:    int64(len(res.Lines)),
		Words:    int64(len(res.Words)),
	}, nil
}

func (f *fakeStore) DeleteWork(context.Context, string) (*store.Counts, error) {
	return &store.Counts{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func flatSpec(workName, file string) WorkSpec {
	return WorkSpec{
		Binding: parser.Binding{
			Work:      corpus.Work{WorkName: workName},
			VerseMode: parser.ExplicitMarker,
		},
		Files: []string{file},
	}
}

func TestOrchestrator_IngestWork(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "flat.txt", "#1\nஅறம் செய்ய விரும்பு\n#2\nசிற்றினம் சேராமை\n")

	st := newFakeStore()
	o := NewOrchestrator(st, dir, discardLogger())

	n, err := o.IngestWork(context.Background(), 9, 4, flatSpec("Aathichoodi", "flat.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, st.loads, 1)
	call := st.loads[0]
	require.Len(t, call.result.Works, 1)
	assert.Equal(t, "Aathichoodi", call.result.Works[0].WorkName)
	assert.Len(t, call.result.Verses, 2)

	require.Len(t, call.links, 1)
	assert.Equal(t, call.result.Works[0].WorkID, call.links[0].WorkID)
	assert.Equal(t, int64(9), call.links[0].CollectionID)
	assert.Equal(t, 4, call.links[0].PositionInCollection)
	assert.True(t, call.links[0].IsPrimary)
}

func TestOrchestrator_RefusesDuplicateWork(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "flat.txt", "#1\nஅறம்\n")

	st := newFakeStore()
	st.existing["Aathichoodi"] = true
	o := NewOrchestrator(st, dir, discardLogger())

	_, err := o.IngestWork(context.Background(), 1, 1, flatSpec("Aathichoodi", "flat.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete it first")
	assert.Empty(t, st.loads)
}

func TestOrchestrator_MissingSourceFile(t *testing.T) {
	st := newFakeStore()
	o := NewOrchestrator(st, t.TempDir(), discardLogger())

	_, err := o.IngestWork(context.Background(), 1, 1, flatSpec("Aathichoodi", "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
	assert.Empty(t, st.loads)
}

func TestOrchestrator_CorpusContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.txt", "#1\nஅறம் பொருள்\n")

	st := newFakeStore()
	o := NewOrchestrator(st, dir, discardLogger())

	c := Corpus{
		Name:       "test",
		Collection: corpus.Collection{CollectionName: "Test", CollectionType: corpus.CollectionCustom},
		Works: []WorkSpec{
			flatSpec("Broken", "missing.txt"),
			flatSpec("Fine", "ok.txt"),
		},
	}
	err := o.IngestCorpus(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, st.loads, 1)
	assert.Equal(t, "Fine", st.loads[0].result.Works[0].WorkName)
	// The surviving work keeps its declared collection position.
	assert.Equal(t, 2, st.loads[0].links[0].PositionInCollection)
}

func TestOrchestrator_MultiWorkFileAdvancesPositions(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "multi.txt",
		"&1 திருமாளிகைத் தேவர்\n#1\nவானவர் போற்றும் நிலை\n&2 சேந்தனார்\n#1\nகோல மலர் நிலவு\n")
	writeSource(t, dir, "flat.txt", "#1\nஅறம் பொருள் இன்பம்\n")

	st := newFakeStore()
	o := NewOrchestrator(st, dir, discardLogger())

	c := Corpus{
		Name:       "test",
		Collection: corpus.Collection{CollectionName: "Test", CollectionType: corpus.CollectionCustom},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					MultiWork:           true,
					MultiWorkNameFormat: "%s பாடல்கள்",
					VerseMode:           parser.ExplicitMarker,
				},
				Files: []string{"multi.txt"},
			},
			flatSpec("Aathichoodi", "flat.txt"),
		},
	}
	require.NoError(t, o.IngestCorpus(context.Background(), c))

	require.Len(t, st.loads, 2)
	require.Len(t, st.loads[0].links, 2)
	assert.Equal(t, 1, st.loads[0].links[0].PositionInCollection)
	assert.Equal(t, 2, st.loads[0].links[1].PositionInCollection)
	// The work after a two-author file takes the next free position.
	require.Len(t, st.loads[1].links, 1)
	assert.Equal(t, 3, st.loads[1].links[0].PositionInCollection)
}

func TestOrchestrator_SubCollections(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.txt", "#1\nமுதல் பாடல்\n")
	writeSource(t, dir, "b.txt", "#1\nஇரண்டாம் பாடல்\n")
	writeSource(t, dir, "c.txt", "#1\nமூன்றாம் பாடல்\n")

	st := newFakeStore()
	o := NewOrchestrator(st, dir, discardLogger())

	thousand := &corpus.Collection{
		CollectionName: "First Thousand",
		CollectionType: corpus.CollectionDevotional,
	}
	c := Corpus{
		Name: "test",
		Collection: corpus.Collection{
			CollectionName: "Prabandham",
			CollectionType: corpus.CollectionDevotional,
		},
		Works: []WorkSpec{
			func() WorkSpec {
				ws := flatSpec("First", "a.txt")
				ws.SubCollection = thousand
				return ws
			}(),
			func() WorkSpec {
				ws := flatSpec("Second", "b.txt")
				ws.SubCollection = thousand
				return ws
			}(),
			flatSpec("Direct", "c.txt"),
		},
	}
	require.NoError(t, o.IngestCorpus(context.Background(), c))

	parentID := st.collections["Prabandham"]
	subID := st.collections["First Thousand"]
	require.NotZero(t, subID)

	// The sub-collection is ensured with its parent filled in.
	var sub corpus.Collection
	for _, e := range st.ensured {
		if e.CollectionName == "First Thousand" {
			sub = e
			break
		}
	}
	require.NotNil(t, sub.ParentCollectionID)
	assert.Equal(t, parentID, *sub.ParentCollectionID)

	// Positions are kept per collection.
	require.Len(t, st.loads, 3)
	assert.Equal(t, subID, st.loads[0].links[0].CollectionID)
	assert.Equal(t, 1, st.loads[0].links[0].PositionInCollection)
	assert.Equal(t, subID, st.loads[1].links[0].CollectionID)
	assert.Equal(t, 2, st.loads[1].links[0].PositionInCollection)
	assert.Equal(t, parentID, st.loads[2].links[0].CollectionID)
	assert.Equal(t, 1, st.loads[2].links[0].PositionInCollection)
}

func TestOrchestrator_CorpusFailsWhenAllWorksFail(t *testing.T) {
	st := newFakeStore()
	o := NewOrchestrator(st, t.TempDir(), discardLogger())

	c := Corpus{
		Name:       "test",
		Collection: corpus.Collection{CollectionName: "Test", CollectionType: corpus.CollectionCustom},
		Works: []WorkSpec{
			flatSpec("Broken", "missing.txt"),
			flatSpec("AlsoBroken", "gone.txt"),
		},
	}
	err := o.IngestCorpus(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 works")
}

func TestOrchestrator_StoreFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.txt", "#1\nஅறம்\n")

	st := newFakeStore()
	st.loadErr = errors.New("connection reset")
	o := NewOrchestrator(st, dir, discardLogger())

	_, err := o.IngestWork(context.Background(), 1, 1, flatSpec("Fine", "ok.txt"))
	assert.ErrorContains(t, err, "connection reset")
}

func TestFindCorpus(t *testing.T) {
	c, err := FindCorpus("kappiyangal")
	require.NoError(t, err)
	assert.Equal(t, "Aimperum Kappiyangal", c.Collection.CollectionName)

	_, err = FindCorpus("nonexistent")
	assert.Error(t, err)
}

func TestCorpora_BindingsAreSane(t *testing.T) {
	all := Corpora()
	require.NotEmpty(t, all)
	orders := map[int]string{}
	for _, c := range all {
		assert.NotEmpty(t, c.Collection.CollectionName, c.Name)
		for _, ws := range c.Works {
			assert.NotEmpty(t, ws.Files, ws.Binding.Work.WorkName)
			if !ws.Binding.MultiWork {
				assert.NotEmpty(t, ws.Binding.Work.WorkName)
				prev, dup := orders[ws.Binding.Work.CanonicalOrder]
				assert.False(t, dup, "canonical order %d shared by %q and %q",
					ws.Binding.Work.CanonicalOrder, prev, ws.Binding.Work.WorkName)
				orders[ws.Binding.Work.CanonicalOrder] = ws.Binding.Work.WorkName
			}
		}
	}
}

func corpusWorkNames(t *testing.T, name string) []string {
	t.Helper()
	c, err := FindCorpus(name)
	require.NoError(t, err)
	names := make([]string, 0, len(c.Works))
	for _, ws := range c.Works {
		names = append(names, ws.Binding.Work.WorkName)
	}
	return names
}

func TestCorpora_Registry(t *testing.T) {
	keel, err := FindCorpus("keelkanakku")
	require.NoError(t, err)
	assert.Len(t, keel.Works, 18)

	epics := corpusWorkNames(t, "kappiyangal")
	for _, want := range []string{"Silapathikaram", "Manimegalai", "Seevaka Sinthamani", "Kundalakesi"} {
		assert.Contains(t, epics, want)
	}
	assert.NotContains(t, epics, "Seerapuranam")

	murai := corpusWorkNames(t, "thirumurai")
	assert.Contains(t, murai, "Thirukovayar")
	assert.Contains(t, murai, "Periya Puranam")

	assert.Contains(t, corpusWorkNames(t, "bakthi"), "Seerapuranam")

	ndp, err := FindCorpus("prabandham")
	require.NoError(t, err)
	require.Len(t, ndp.Works, 4)
	for i, ws := range ndp.Works {
		assert.True(t, ws.Binding.MultiWork)
		require.NotNil(t, ws.SubCollection)
		assert.Equal(t, i+1, ws.SubCollection.SortOrder)
	}
	assert.Equal(t, "Muthal Aayiram", ndp.Works[0].SubCollection.CollectionName)
}
