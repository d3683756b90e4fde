// Package contract holds behavior suites every repository backend must pass.
// Backends wire them from their own _test.go files with a factory.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

// Fixture lets suites seed rows and observe the backend without knowing its SQL.
type Fixture interface {
	SeedUser(ctx context.Context, u model.User) error
	SeedReminder(ctx context.Context, r model.Reminder) (int64, error)
	// Break makes the reminders table unreachable; the returned func undoes it.
	Break(ctx context.Context) (restore func(), err error)
	// InUse reports connections currently checked out of the pool.
	InUse() int
}

type ReminderFactory func(t *testing.T) (repository.ReminderRepository, Fixture, func())

type UserFactory func(t *testing.T) (repository.UserRepository, Fixture, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func seedReminders(t *testing.T, f Fixture, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := f.SeedReminder(context.Background(), model.Reminder{
			UserID:    "u-1",
			Content:   fmt.Sprintf("reminder %d", i),
			Priority:  i % 3,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed reminder: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func RunReminderRepositoryContract(t *testing.T, makeRepo ReminderFactory) {
	t.Helper()

	t.Run("get_detail_fields", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ids := seedReminders(t, f, 1)
		got, err := repo.GetDetail(context.Background(), ids[0])
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != ids[0] || got.Content != "reminder 0" || !got.CreatedAt.Equal(base) {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_detail_unknown_id", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetDetail(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("get_detail_with_user", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := f.SeedUser(ctx, model.User{ID: "u-1", DisplayName: "Ann", Phone: "+100", CreatedAt: base}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		ids := seedReminders(t, f, 1)
		got, err := repo.GetDetail(ctx, ids[0])
		if err != nil {
			t.Fatalf("detail: %v", err)
		}
		if got.User == nil || got.User.ID != "u-1" || got.User.DisplayName != "Ann" {
			t.Fatalf("expected owner resolved, got %+v", got.User)
		}
	})

	t.Run("get_detail_missing_user", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ids := seedReminders(t, f, 1)
		got, err := repo.GetDetail(context.Background(), ids[0])
		if err != nil {
			t.Fatalf("detail: %v", err)
		}
		if got.ID != ids[0] || got.User != nil {
			t.Fatalf("expected reminder without owner, got %+v", got)
		}
	})

	t.Run("get_detail_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetDetail(context.Background(), 424242)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_newest_first", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ids := seedReminders(t, f, 3)
		res, err := repo.List(context.Background(), repository.Page{Limit: 2, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].ID != ids[2] || res.Items[1].ID != ids[1] {
			t.Fatalf("expected [%d %d], got [%d %d]", ids[2], ids[1], res.Items[0].ID, res.Items[1].ID)
		}
		if res.Limit != 2 || res.Offset != 0 {
			t.Fatalf("window not echoed: %+v", res)
		}
	})

	t.Run("list_window_sizes", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		const total = 7
		seedReminders(t, f, total)
		for _, p := range []repository.Page{
			{Limit: 1, Offset: 0}, {Limit: 3, Offset: 0}, {Limit: 3, Offset: 3},
			{Limit: 3, Offset: 6}, {Limit: 10, Offset: 0}, {Limit: 5, Offset: 4},
			{Limit: 2, Offset: 7}, {Limit: 2, Offset: 100},
		} {
			res, err := repo.List(context.Background(), p)
			if err != nil {
				t.Fatalf("list %+v: %v", p, err)
			}
			want := min(p.Limit, max(0, total-p.Offset))
			if len(res.Items) != want || res.Total != total {
				t.Fatalf("page %+v: len=%d total=%d, want len=%d total=%d", p, len(res.Items), res.Total, want, total)
			}
			for i := 1; i < len(res.Items); i++ {
				if res.Items[i-1].CreatedAt.Before(res.Items[i].CreatedAt) {
					t.Fatalf("page %+v not sorted newest first at %d", p, i)
				}
			}
		}
	})

	t.Run("list_offset_past_end", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedReminders(t, f, 4)
		res, err := repo.List(context.Background(), repository.Page{Limit: 10, Offset: 4})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Items == nil || len(res.Items) != 0 || res.Total != 4 {
			t.Fatalf("expected empty non-nil page with total 4, got %+v", res)
		}
	})

	t.Run("list_ties_by_id_desc", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var ids []int64
		for i := 0; i < 3; i++ {
			id, err := f.SeedReminder(ctx, model.Reminder{UserID: "u-1", Content: "same", CreatedAt: base})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}
			ids = append(ids, id)
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for i, it := range res.Items {
			if it.ID != ids[len(ids)-1-i] {
				t.Fatalf("tie order: position %d has id %d", i, it.ID)
			}
		}
	})

	t.Run("list_orders_instants_across_utc_offsets", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		plus2 := time.FixedZone("UTC+2", 2*60*60)
		minus5 := time.FixedZone("UTC-5", -5*60*60)
		// wall clocks run opposite to the instants: 13:00, 11:00 and 12:00 UTC
		seed := []struct {
			content string
			at      time.Time
		}{
			{"newest", time.Date(2024, 3, 1, 8, 0, 0, 0, minus5)},
			{"older", time.Date(2024, 3, 1, 13, 0, 0, 0, plus2)},
			{"middle", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		}
		for _, s := range seed {
			if _, err := f.SeedReminder(ctx, model.Reminder{UserID: "u-1", Content: s.content, CreatedAt: s.at}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		var got []string
		for _, it := range res.Items {
			got = append(got, it.Content)
		}
		if fmt.Sprint(got) != "[newest middle older]" {
			t.Fatalf("expected newest first by instant, got %v", got)
		}
		if !res.Items[1].CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("created_at not preserved: %v", res.Items[1].CreatedAt)
		}
	})

	t.Run("list_idempotent", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedReminders(t, f, 5)
		p := repository.Page{Limit: 3, Offset: 1}
		a, err := repo.List(context.Background(), p)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		b, err := repo.List(context.Background(), p)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if a.Total != b.Total || len(a.Items) != len(b.Items) {
			t.Fatalf("results differ: %+v vs %+v", a, b)
		}
		for i := range a.Items {
			if a.Items[i].ID != b.Items[i].ID {
				t.Fatalf("item %d differs: %d vs %d", i, a.Items[i].ID, b.Items[i].ID)
			}
		}
	})

	t.Run("list_empty", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		res, err := repo.List(context.Background(), repository.Page{Limit: 5})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Items == nil || len(res.Items) != 0 || res.Total != 0 {
			t.Fatalf("expected empty page, got %+v", res)
		}
	})

	t.Run("count", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedReminders(t, f, 6)
		n, err := repo.Count(context.Background())
		if err != nil || n != 6 {
			t.Fatalf("expected 6, got %d (%v)", n, err)
		}
	})

	t.Run("storage_failure_releases_connection", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seedReminders(t, f, 2)
		restore, err := f.Break(ctx)
		if err != nil {
			t.Fatalf("break: %v", err)
		}
		t.Cleanup(restore)

		res, err := repo.List(ctx, repository.Page{Limit: 10})
		if !errors.Is(err, repository.ErrStorage) {
			t.Fatalf("expected storage failure, got %v", err)
		}
		if len(res.Items) != 0 || res.Total != 0 {
			t.Fatalf("partial data returned alongside error: %+v", res)
		}
		deadline := time.Now().Add(time.Second)
		for f.InUse() != 0 {
			if time.Now().After(deadline) {
				t.Fatalf("connection still checked out: in use=%d", f.InUse())
			}
			time.Sleep(10 * time.Millisecond)
		}
	})
}

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("get_by_id", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := f.SeedUser(ctx, model.User{ID: "wa-42", DisplayName: "Bo", CreatedAt: base}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		got, err := repo.GetByID(ctx, "wa-42")
		if err != nil || got.DisplayName != "Bo" {
			t.Fatalf("unexpected: %+v (%v)", got, err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), "nobody")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_newest_first", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i, id := range []string{"a", "b", "c", "d"} {
			if err := f.SeedUser(ctx, model.User{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 4 || len(res.Items) != 2 || res.Items[0].ID != "c" || res.Items[1].ID != "b" {
			t.Fatalf("unexpected page: %+v", res)
		}
	})

	t.Run("list_orders_instants_across_utc_offsets", func(t *testing.T) {
		repo, f, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		tokyo := time.FixedZone("UTC+9", 9*60*60)
		// 18:00 in UTC+9 is 09:00 UTC
		if err := f.SeedUser(ctx, model.User{ID: "early", CreatedAt: time.Date(2024, 3, 1, 18, 0, 0, 0, tokyo)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := f.SeedUser(ctx, model.User{ID: "late", CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		res, err := repo.List(ctx, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Items[0].ID != "late" || res.Items[1].ID != "early" {
			t.Fatalf("expected [late early], got %+v", res.Items)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
