package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

// stepClock advances one second per call so timestamps and ids are
// predictable.
type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV, *stepClock) {
	t.Helper()
	kv := storage.NewMemoryKV()
	clock := &stepClock{t: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	s, err := New(kv, Options{Now: clock.now})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))
	return s, kv, clock
}

func assertInvariants(t *testing.T, s *Store) {
	t.Helper()
	seen := make(map[int64]bool)
	for _, task := range s.Tasks() {
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
		assert.Equal(t, task.Completed, task.CompletedAt != nil, "completedAt pairing for id %d", task.ID)
	}
}

func persisted(t *testing.T, kv *storage.MemoryKV) []model.Task {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	require.True(t, ok, "expected persisted tasks key")
	var out []model.Task
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	_, added, err := s.Add(ctx, "Buy milk", model.CategoryPersonal)
	require.NoError(t, err)
	require.True(t, added)
	_, added, err = s.Add(ctx, "Finish report", model.CategoryWork)
	require.NoError(t, err)
	require.True(t, added)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, model.CategoryPersonal, tasks[0].Category)
	assert.False(t, tasks[0].Completed)
	assert.Nil(t, tasks[0].CompletedAt)
	assert.Equal(t, "Finish report", tasks[1].Title)
	assert.Equal(t, model.CategoryWork, tasks[1].Category)
	assert.False(t, tasks[1].Completed)
	assert.Equal(t, "2026-02-09 12:00:01", tasks[0].CreatedAt)

	assert.Equal(t, tasks, persisted(t, kv))
	assertInvariants(t, s)
}

func TestAddBlankTitleIsNoop(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, added, err := s.Add(ctx, title, model.CategoryWork)
		require.NoError(t, err)
		assert.False(t, added, "title %q", title)
	}
	assert.Equal(t, 0, s.Len())
	_, ok, _ := kv.Get(ctx, DefaultKey)
	assert.False(t, ok, "blank add must not persist")
}

func TestAddTrimsTitle(t *testing.T) {
	s, _, _ := newTestStore(t)
	task, added, err := s.Add(context.Background(), "  Call mom  ", model.CategoryPersonal)
	require.NoError(t, err)
	require.True(t, added)
	assert.Equal(t, "Call mom", task.Title)
}

func TestToggleTwiceRestoresIncomplete(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()
	task, _, err := s.Add(ctx, "Buy milk", model.CategoryPersonal)
	require.NoError(t, err)

	res, err := s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, Found, res)
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "2026-02-09 12:00:02", *got.CompletedAt)
	assertInvariants(t, s)

	res, err = s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, Found, res)
	got, _ = s.Get(task.ID)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	assertInvariants(t, s)

	raw, _, _ := kv.Get(ctx, DefaultKey)
	assert.NotContains(t, raw, "completedAt", "absent completedAt must be omitted, not null")
}

func TestUpdatePreservesIdentityAndCompletion(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	task, _, err := s.Add(ctx, "Buy milk", model.CategoryPersonal)
	require.NoError(t, err)
	_, err = s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	before, _ := s.Get(task.ID)

	res, err := s.Update(ctx, task.ID, "Buy oat milk", model.CategoryPersonal)
	require.NoError(t, err)
	assert.Equal(t, Found, res)

	after, _ := s.Get(task.ID)
	assert.Equal(t, "Buy oat milk", after.Title)
	assert.Equal(t, model.CategoryPersonal, after.Category)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.Completed, after.Completed)
	assert.Equal(t, before.CompletedAt, after.CompletedAt)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	task, _, err := s.Add(ctx, "Buy milk", model.CategoryPersonal)
	require.NoError(t, err)

	res, err := s.Update(ctx, task.ID, "  ", model.CategoryWork)
	assert.Equal(t, Found, res)
	assert.ErrorIs(t, err, model.ErrTitleRequired)
	got, _ := s.Get(task.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, model.CategoryPersonal, got.Category)
}

func TestUnknownIDIsNoop(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()
	_, _, err := s.Add(ctx, "Keep me", model.CategoryWork)
	require.NoError(t, err)
	before := s.Tasks()
	rawBefore, _, _ := kv.Get(ctx, DefaultKey)

	res, err := s.Delete(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, NotFound, res)
	res, err = s.ToggleComplete(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, NotFound, res)
	res, err = s.Update(ctx, 42, "x", model.CategoryWork)
	require.NoError(t, err)
	assert.Equal(t, NotFound, res)
	_, res = s.Get(42)
	assert.Equal(t, NotFound, res)

	assert.Equal(t, before, s.Tasks())
	rawAfter, _, _ := kv.Get(ctx, DefaultKey)
	assert.Equal(t, rawBefore, rawAfter)
}

func TestDeleteRemovesOnlyTarget(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()
	a, _, _ := s.Add(ctx, "a", model.CategoryWork)
	b, _, _ := s.Add(ctx, "b", model.CategorySchool)
	c, _, _ := s.Add(ctx, "c", model.CategoryWork)

	res, err := s.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, Found, res)

	ids := []int64{}
	for _, task := range s.Tasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{a.ID, c.ID}, ids)
	assert.Len(t, persisted(t, kv), 2)
}

func TestFilterIsOrderPreservingAndPure(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	for _, in := range []struct{ title, cat string }{
		{"w1", model.CategoryWork},
		{"p1", model.CategoryPersonal},
		{"w2", model.CategoryWork},
		{"s1", model.CategorySchool},
	} {
		_, _, err := s.Add(ctx, in.title, in.cat)
		require.NoError(t, err)
	}

	all := s.Filter(model.FilterAll)
	titles := func(ts []model.Task) []string {
		out := []string{}
		for _, t := range ts {
			out = append(out, t.Title)
		}
		return out
	}
	assert.Equal(t, []string{"w1", "p1", "w2", "s1"}, titles(all))
	assert.Equal(t, []string{"w1", "w2"}, titles(s.Filter(model.CategoryWork)))
	assert.Empty(t, s.Filter(model.CategoryOthers))

	work := s.Filter(model.CategoryWork)
	work[0].Title = "mutated"
	assert.Equal(t, "w1", s.Tasks()[0].Title)
}

func TestLoadToleratesBadData(t *testing.T) {
	cases := map[string]*string{
		"absent":    nil,
		"empty":     ptr(""),
		"null":      ptr("null"),
		"not json":  ptr("{oops"),
		"wrong doc": ptr(`{"id":1}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			if raw != nil {
				require.NoError(t, kv.Set(context.Background(), DefaultKey, *raw))
			}
			s, err := New(kv, Options{})
			require.NoError(t, err)
			require.NoError(t, s.Load(context.Background()))
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestLoadMissingOptionalFields(t *testing.T) {
	kv := storage.NewMemoryKV()
	raw := `[{"id":5,"title":"old","category":"Hobby","createdAt":"then","completed":false,"completedAt":"stray"},
		{"id":7,"title":"plain","category":"School","createdAt":"then","completed":false},
		{"id":9,"title":"done","category":"Work","createdAt":"then","completed":true,"completedAt":"later"}]`
	require.NoError(t, kv.Set(context.Background(), DefaultKey, raw))
	s, err := New(kv, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Nil(t, tasks[0].CompletedAt)
	assert.Equal(t, "Hobby", tasks[0].Category)
	assert.Equal(t, "plain", tasks[1].Title)
	assert.False(t, tasks[1].Completed)
	assert.Nil(t, tasks[1].CompletedAt)
	require.NotNil(t, tasks[2].CompletedAt)
	assert.Equal(t, "later", *tasks[2].CompletedAt)
	assertInvariants(t, s)
}

func TestLoadStampsCompletedTaskWithoutCompletedAt(t *testing.T) {
	kv := storage.NewMemoryKV()
	raw := `[{"id":3,"title":"finished","category":"Work","createdAt":"then","completed":true}]`
	require.NoError(t, kv.Set(context.Background(), DefaultKey, raw))
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s, err := New(kv, Options{Now: func() time.Time { return fixed }})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	require.NotNil(t, tasks[0].CompletedAt)
	assert.Equal(t, "2026-02-09 12:00:00", *tasks[0].CompletedAt)
	assertInvariants(t, s)
}

func TestLoadDropsNullAndInvalidElements(t *testing.T) {
	kv := storage.NewMemoryKV()
	raw := `[null,
		{"id":0,"title":"no id","category":"Work","createdAt":"then","completed":false},
		{"id":4,"title":"  ","category":"Work","createdAt":"then","completed":false},
		{"id":8,"title":"keep","category":"Work","createdAt":"then","completed":false}]`
	require.NoError(t, kv.Set(context.Background(), DefaultKey, raw))
	s, err := New(kv, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(8), tasks[0].ID)
	assertInvariants(t, s)
}

func TestLoadKeepsFirstOfDuplicateIDs(t *testing.T) {
	kv := storage.NewMemoryKV()
	raw := `[{"id":6,"title":"first","category":"Work","createdAt":"then","completed":false},
		{"id":6,"title":"second","category":"School","createdAt":"then","completed":false}]`
	require.NoError(t, kv.Set(context.Background(), DefaultKey, raw))
	s, err := New(kv, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "first", tasks[0].Title)

	res, err := s.Delete(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, Found, res)
	assert.Equal(t, 0, s.Len())
}

func TestLoadPropagatesBackendReadError(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Close())
	s, err := New(kv, Options{})
	require.NoError(t, err)
	err = s.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func TestRoundTripThroughPersistence(t *testing.T) {
	s, kv, clock := newTestStore(t)
	ctx := context.Background()
	a, _, _ := s.Add(ctx, "Buy milk", model.CategoryPersonal)
	_, _, _ = s.Add(ctx, "Finish report", model.CategoryWork)
	_, _ = s.ToggleComplete(ctx, a.ID)

	reloaded, err := New(kv, Options{Now: clock.now})
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.Tasks(), reloaded.Tasks())
}

func TestPersistFailureIsReportedButApplied(t *testing.T) {
	s, kv, _ := newTestStore(t)
	boom := errors.New("quota exceeded")
	kv.FailSet = boom

	_, added, err := s.Add(context.Background(), "Buy milk", model.CategoryPersonal)
	assert.True(t, added)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Len())
}

func TestCustomKeyAndLayout(t *testing.T) {
	kv := storage.NewMemoryKV()
	fixed := time.Date(2026, 3, 1, 8, 5, 0, 0, time.UTC)
	s, err := New(kv, Options{Key: "board", TimeLayout: time.RFC3339, Now: func() time.Time { return fixed }})
	require.NoError(t, err)
	task, _, err := s.Add(context.Background(), "x", model.CategoryOthers)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T08:05:00Z", task.CreatedAt)
	_, ok, _ := kv.Get(context.Background(), "board")
	assert.True(t, ok)
}

func ptr(s string) *string { return &s }
