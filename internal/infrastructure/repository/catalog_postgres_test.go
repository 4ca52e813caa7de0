package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/internal/domain"
	"learnhub/internal/infrastructure/cache"
)

type memStore map[string]string

func (m memStore) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m memStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if b, ok := value.([]byte); ok {
		m[key] = string(b)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m memStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

// returning is the empty RETURNING "id" result of an insert.
func returning() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func expectEmptyTables(mock sqlmock.Sqlmock) {
	for _, table := range []string{"courses", "roadmap_steps", "videos", "resource_sections", "resource_links", "notifications"} {
		mock.ExpectQuery(q(`SELECT count(*) FROM "` + table + `"`)).WillReturnRows(countRows(0))
	}
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Course: domain.Course{Title: "web", Status: domain.CourseStarted, ManualProgress: 20},
		Roadmap: []domain.RoadmapStep{
			{Title: "a", Status: domain.StepCompleted},
			{Title: "b", Status: domain.StepCurrent, Details: "more"},
		},
		Videos: []domain.Video{{Title: "v", Duration: "10:00", Src: "/media/videos/v.mp4", Watched: true}},
		Resources: []domain.ResourceGroup{{
			Session: "s1",
			Chapter: "c1",
			Links:   []domain.ResourceLink{{Title: "x", URL: "https://x"}, {Title: "y", URL: "https://y"}},
		}},
		Notifications: []domain.Notification{{Message: "hi", CreatedAt: time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)}},
	}
}

func TestFromCatalogPositions(t *testing.T) {
	rows := fromCatalog(testCatalog())

	if rows.course == nil || rows.course.Status != "ST" || rows.course.ManualProgress != 20 {
		t.Fatalf("course = %+v, want the catalog course", rows.course)
	}
	if len(rows.steps) != 2 || rows.steps[1].Position != 1 || rows.steps[1].Status != "current" {
		t.Fatalf("steps = %+v, want two rows with positions", rows.steps)
	}
	if len(rows.videos) != 1 || rows.videos[0].Src != "/media/videos/v.mp4" {
		t.Fatalf("videos = %+v", rows.videos)
	}
	if len(rows.sections) != 1 || len(rows.sections[0].Links) != 2 {
		t.Fatalf("sections = %+v, want one section with two links", rows.sections)
	}
	for j, l := range rows.sections[0].Links {
		if l.SectionID != rows.sections[0].ID {
			t.Fatalf("link %d section = %v, want %v", j, l.SectionID, rows.sections[0].ID)
		}
		if l.Position != j {
			t.Fatalf("link %d position = %d", j, l.Position)
		}
	}
	if len(rows.notes) != 1 || rows.notes[0].Message != "hi" {
		t.Fatalf("notes = %+v", rows.notes)
	}
}

func TestFromCatalogSkipsUntitledCourse(t *testing.T) {
	c := testCatalog()
	c.Course = domain.Course{}
	if rows := fromCatalog(c); rows.course != nil {
		t.Fatalf("course = %+v, want nil", rows.course)
	}
}

func TestToDomainMapping(t *testing.T) {
	t.Run("unknown_step_status_is_pending", func(t *testing.T) {
		m := RoadmapStepGorm{Title: "x", Status: "archived"}
		if got := m.ToDomain().Status; got != domain.StepPending {
			t.Fatalf("Status = %q, want %q", got, domain.StepPending)
		}
	})

	t.Run("unknown_course_status_is_suspended", func(t *testing.T) {
		m := CourseGorm{Title: "x", Status: "??"}
		if got := m.ToDomain().Status; got != domain.CourseSuspended {
			t.Fatalf("Status = %q, want %q", got, domain.CourseSuspended)
		}
	})

	t.Run("videos_start_unwatched", func(t *testing.T) {
		rows := fromCatalog(testCatalog())
		if rows.videos[0].ToDomain().Watched {
			t.Fatal("video loaded as watched")
		}
	})

	t.Run("section_keeps_link_order", func(t *testing.T) {
		rows := fromCatalog(testCatalog())
		g := rows.sections[0].ToDomain()
		if g.Session != "s1" || g.Chapter != "c1" {
			t.Fatalf("group = %+v", g)
		}
		if len(g.Links) != 2 || g.Links[0].Title != "x" || g.Links[1].URL != "https://y" {
			t.Fatalf("links = %+v", g.Links)
		}
	})
}

func TestSeedInsertsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	expectEmptyTables(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(q(`INSERT INTO "courses"`)).WillReturnRows(returning())
	mock.ExpectQuery(q(`INSERT INTO "roadmap_steps"`)).WillReturnRows(returning())
	mock.ExpectQuery(q(`INSERT INTO "videos"`)).WillReturnRows(returning())
	mock.ExpectQuery(q(`INSERT INTO "resource_sections"`)).WillReturnRows(returning())
	mock.ExpectQuery(q(`INSERT INTO "resource_links"`)).WillReturnRows(returning())
	mock.ExpectQuery(q(`INSERT INTO "notifications"`)).WillReturnRows(returning())
	mock.ExpectCommit()

	store := memStore{"catalog:snapshot": "stale"}
	repo := NewCatalogRepository(db, cache.NewCatalogCache(store, time.Minute))
	seeded, err := repo.Seed(context.Background(), testCatalog())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !seeded {
		t.Fatal("Seed() = false on an empty store, want true")
	}
	if _, ok := store["catalog:snapshot"]; ok {
		t.Fatal("seeding did not invalidate the cached catalog")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedRollsBackOnInsertError(t *testing.T) {
	db, mock := newMockDB(t)
	expectEmptyTables(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(q(`INSERT INTO "courses"`)).WillReturnRows(returning())
	mock.ExpectQuery(q(`INSERT INTO "roadmap_steps"`)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	seeded, err := NewCatalogRepository(db, nil).Seed(context.Background(), testCatalog())
	if err == nil {
		t.Fatal("Seed error = nil, want the insert failure")
	}
	if seeded {
		t.Fatal("Seed() = true after a failed insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedSkipsPartiallyFilledStore(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(q(`SELECT count(*) FROM "courses"`)).WillReturnRows(countRows(0))
	mock.ExpectQuery(q(`SELECT count(*) FROM "roadmap_steps"`)).WillReturnRows(countRows(0))
	mock.ExpectQuery(q(`SELECT count(*) FROM "videos"`)).WillReturnRows(countRows(3))

	seeded, err := NewCatalogRepository(db, nil).Seed(context.Background(), testCatalog())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if seeded {
		t.Fatal("Seed() = true with videos already stored, want false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func expectEmptyLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(q(`SELECT * FROM "courses" ORDER BY created_at asc`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(q(`SELECT * FROM "roadmap_steps" ORDER BY position asc`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(q(`SELECT * FROM "videos" ORDER BY position asc`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(q(`SELECT * FROM "resource_sections" ORDER BY position asc`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(q(`SELECT * FROM "notifications" ORDER BY created_at desc`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func TestLoadEmptyTables(t *testing.T) {
	db, mock := newMockDB(t)
	expectEmptyLoad(mock)

	_, err := NewCatalogRepository(db, nil).Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogEmpty) {
		t.Fatalf("Load error = %v, want ErrCatalogEmpty", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadOrFallsBackWhenEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	expectEmptyLoad(mock)

	fallback := testCatalog()
	got, err := NewCatalogRepository(db, nil).LoadOr(context.Background(), fallback)
	if err != nil {
		t.Fatalf("LoadOr: %v", err)
	}
	if got.Course.Title != fallback.Course.Title || len(got.Roadmap) != len(fallback.Roadmap) {
		t.Fatalf("LoadOr = %+v, want the fallback catalog", got)
	}
}

func TestLoadFromDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	sectionID := uuid.New()
	created := time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(`SELECT * FROM "courses" ORDER BY created_at asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "manual_progress"}).
			AddRow(uuid.New().String(), "web", "FI", 0))
	mock.ExpectQuery(q(`SELECT * FROM "roadmap_steps" ORDER BY position asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "title", "status"}).
			AddRow(uuid.New().String(), 0, "first", "completed").
			AddRow(uuid.New().String(), 1, "second", "archived"))
	mock.ExpectQuery(q(`SELECT * FROM "videos" ORDER BY position asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "title", "src"}).
			AddRow(uuid.New().String(), 0, "intro", "/media/videos/intro.mp4"))
	mock.ExpectQuery(q(`SELECT * FROM "resource_sections" ORDER BY position asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "session", "chapter"}).
			AddRow(sectionID.String(), 0, "s1", "c1"))
	mock.ExpectQuery(q(`SELECT * FROM "resource_links" WHERE "resource_links"."section_id" = $1 ORDER BY position asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id", "position", "title", "url"}).
			AddRow(uuid.New().String(), sectionID.String(), 0, "docs", "https://docs").
			AddRow(uuid.New().String(), sectionID.String(), 1, "repo", "https://repo"))
	mock.ExpectQuery(q(`SELECT * FROM "notifications" ORDER BY created_at desc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message", "created_at"}).
			AddRow(uuid.New().String(), "hello", created))

	store := memStore{}
	repo := NewCatalogRepository(db, cache.NewCatalogCache(store, time.Minute))
	c, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Course.Title != "web" || c.Course.Status != domain.CourseFinished {
		t.Fatalf("course = %+v", c.Course)
	}
	if len(c.Roadmap) != 2 || c.Roadmap[0].Title != "first" || c.Roadmap[1].Status != domain.StepPending {
		t.Fatalf("roadmap = %+v", c.Roadmap)
	}
	if len(c.Videos) != 1 || c.Videos[0].Src != "/media/videos/intro.mp4" {
		t.Fatalf("videos = %+v", c.Videos)
	}
	if len(c.Resources) != 1 || len(c.Resources[0].Links) != 2 || c.Resources[0].Links[1].Title != "repo" {
		t.Fatalf("resources = %+v", c.Resources)
	}
	if len(c.Notifications) != 1 || !c.Notifications[0].CreatedAt.Equal(created) {
		t.Fatalf("notifications = %+v", c.Notifications)
	}
	if _, ok := store["catalog:snapshot"]; !ok {
		t.Fatal("loaded catalog was not cached")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadServesFromCache(t *testing.T) {
	store := memStore{}
	want := testCatalog()
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	store["catalog:snapshot"] = string(data)

	// No database: a cache hit must not touch it.
	repo := NewCatalogRepository(nil, cache.NewCatalogCache(store, time.Minute))
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Roadmap) != 2 || got.Roadmap[1].Details != "more" {
		t.Fatalf("roadmap = %+v", got.Roadmap)
	}
	if got.Course.ManualProgress != 20 {
		t.Fatalf("course = %+v", got.Course)
	}
}
