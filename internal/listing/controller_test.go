package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/api"
	"github.com/PhucLe22/lms-client/internal/api/apitest"
	"github.com/PhucLe22/lms-client/internal/models"
)

type countingFetch struct {
	mu      sync.Mutex
	queries []Query
	result  *models.Paginated[models.Course]
	err     error
}

func (f *countingFetch) fetch(ctx context.Context, q Query) (*models.Paginated[models.Course], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &models.Paginated[models.Course]{Page: q.Page, PageSize: q.PageSize}, nil
}

func (f *countingFetch) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *countingFetch) last() Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func TestDebouncedSearchIssuesOneQuery(t *testing.T) {
	fetcher := &countingFetch{}
	c := NewController[models.Course](fetcher.fetch, 10, WithDebounce[models.Course](30*time.Millisecond))
	defer c.Stop()

	ctx := context.Background()
	// simulate typing "java" one keystroke at a time
	for _, typed := range []string{"j", "ja", "jav", "java"} {
		c.SetSearch(ctx, typed)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fetcher.count() == 1 }, time.Second, 5*time.Millisecond)
	// give a stray timer the chance to mis-fire before asserting
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, fetcher.count())
	assert.Equal(t, "java", fetcher.last().Search)
	assert.Equal(t, 1, fetcher.last().Page)
}

func TestFilterChangeResetsToPageOne(t *testing.T) {
	fetcher := &countingFetch{}
	c := NewController[models.Course](fetcher.fetch, 10)
	defer c.Stop()

	ctx := context.Background()
	c.SetPage(ctx, 3)
	require.Equal(t, 3, fetcher.last().Page)

	c.SetFilter(ctx, "Advanced")
	assert.Equal(t, 1, fetcher.last().Page)
	assert.Equal(t, "Advanced", fetcher.last().Filter)
	assert.Equal(t, 1, c.Page())
}

func TestControllerLoadPopulatesState(t *testing.T) {
	fetcher := &countingFetch{result: &models.Paginated[models.Course]{
		Items:      []models.Course{{ID: "c1", Title: "Go"}},
		Page:       1,
		PageSize:   10,
		TotalCount: 1,
		TotalPages: 1,
	}}
	c := NewController[models.Course](fetcher.fetch, 10)
	defer c.Stop()

	c.Load(context.Background())
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 1, c.TotalCount())
	assert.Equal(t, 1, c.TotalPages())
	assert.False(t, c.Loading())
}

func TestControllerFetchErrorLeavesStateUntouched(t *testing.T) {
	fetcher := &countingFetch{result: &models.Paginated[models.Course]{
		Items:      []models.Course{{ID: "c1"}},
		TotalCount: 1, TotalPages: 1,
	}}
	var seen error
	c := NewController[models.Course](fetcher.fetch, 10, WithOnError[models.Course](func(err error) { seen = err }))
	defer c.Stop()

	ctx := context.Background()
	c.Load(ctx)
	require.Len(t, c.Items(), 1)

	fetcher.err = errors.New("boom")
	c.SetPage(ctx, 2)

	assert.Error(t, seen)
	assert.Len(t, c.Items(), 1, "rows kept after a failed reload")
}

func TestControllerSupersededFetchIsDropped(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context, q Query) (*models.Paginated[models.Course], error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			<-release // the slow, superseded fetch
			return &models.Paginated[models.Course]{Items: []models.Course{{ID: "stale"}}}, nil
		}
		return &models.Paginated[models.Course]{Items: []models.Course{{ID: "fresh"}}}, nil
	}

	c := NewController[models.Course](fetch, 10)
	defer c.Stop()

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		c.SetPage(ctx, 1)
		close(done)
	}()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	c.SetPage(ctx, 2) // supersedes the in-flight fetch
	close(release)
	<-done

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID, "stale result must not overwrite the newer one")
}

func TestControllerOptimisticPatchAndRemove(t *testing.T) {
	fetcher := &countingFetch{result: &models.Paginated[models.Course]{
		Items: []models.Course{{ID: "c1", Title: "Old"}, {ID: "c2", Title: "Keep"}},
	}}
	c := NewController[models.Course](fetcher.fetch, 10)
	defer c.Stop()

	c.Load(context.Background())

	c.Patch(
		func(course models.Course) bool { return course.ID == "c1" },
		func(course *models.Course) { course.Title = "New" },
	)
	items := c.Items()
	assert.Equal(t, "New", items[0].Title)
	assert.Equal(t, "Keep", items[1].Title)

	c.Remove(func(course models.Course) bool { return course.ID == "c1" })
	items = c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "c2", items[0].ID)
}

func TestControllerAgainstLiveCatalog(t *testing.T) {
	server := apitest.New()
	defer server.Close()
	server.Courses = []models.Course{
		{ID: "c1", Title: "Java for Beginners", Level: models.LevelBeginner},
		{ID: "c2", Title: "Go Basics", Level: models.LevelBeginner},
	}

	client := api.New(server.URL(), nil)
	fetch := func(ctx context.Context, q Query) (*models.Paginated[models.Course], error) {
		return client.Courses.List(ctx, api.CourseListOptions{
			Page: q.Page, PageSize: q.PageSize, Search: q.Search, Level: models.Level(q.Filter),
		})
	}

	c := NewController[models.Course](fetch, 10, WithDebounce[models.Course](20*time.Millisecond))
	defer c.Stop()

	ctx := context.Background()
	for _, typed := range []string{"j", "ja", "jav", "java"} {
		c.SetSearch(ctx, typed)
	}

	require.Eventually(t, func() bool {
		items := c.Items()
		return len(items) == 1 && items[0].Title == "Java for Beginners"
	}, time.Second, 5*time.Millisecond)

	// exactly one catalog query reached the server
	assert.Equal(t, 1, server.CountRequests("GET", "/api/courses"))
}
