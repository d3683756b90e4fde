package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/maxviazov/reminder-admin/internal/service"
)

// fakeReminderRepo keeps reminders in memory and mimics the ordering contract.
type fakeReminderRepo struct {
	items    []model.Reminder
	users    map[string]model.User
	err      error
	block    bool
	lastPage repository.Page
	calls    int
}

func (f *fakeReminderRepo) sorted() []model.Reminder {
	out := append([]model.Reminder(nil), f.items...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeReminderRepo) wait(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return repository.MapError("fake", ctx.Err())
	}
	return f.err
}

func (f *fakeReminderRepo) find(ctx context.Context, id int64) (model.Reminder, error) {
	if err := f.wait(ctx); err != nil {
		return model.Reminder{}, err
	}
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Reminder{}, repository.ErrNotFound
}

func (f *fakeReminderRepo) GetDetail(ctx context.Context, id int64) (model.ReminderDetail, error) {
	r, err := f.find(ctx, id)
	if err != nil {
		return model.ReminderDetail{}, err
	}
	d := model.ReminderDetail{Reminder: r}
	if u, ok := f.users[r.UserID]; ok {
		d.User = &u
	}
	return d, nil
}

func (f *fakeReminderRepo) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Reminder], error) {
	f.calls++
	f.lastPage = p
	if err := f.wait(ctx); err != nil {
		return repository.PageResult[model.Reminder]{}, err
	}
	all := f.sorted()
	start := min(p.Offset, len(all))
	end := min(start+p.Limit, len(all))
	return repository.PageResult[model.Reminder]{
		Items:  append([]model.Reminder{}, all[start:end]...),
		Total:  len(all),
		Limit:  p.Limit,
		Offset: p.Offset,
	}, nil
}

func (f *fakeReminderRepo) Count(ctx context.Context) (int, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return len(f.items), nil
}

var _ repository.ReminderRepository = (*fakeReminderRepo)(nil)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func threeReminders() *fakeReminderRepo {
	return &fakeReminderRepo{
		items: []model.Reminder{
			{ID: 1, UserID: "u1", Content: "first", CreatedAt: t0},
			{ID: 2, UserID: "u1", Content: "second", CreatedAt: t0.Add(time.Hour)},
			{ID: 3, UserID: "u2", Content: "third", CreatedAt: t0.Add(2 * time.Hour)},
		},
		users: map[string]model.User{"u1": {ID: "u1", DisplayName: "Ann"}},
	}
}

func TestReminderService_ListReminders_NewestFirst(t *testing.T) {
	svc := service.NewReminderService(threeReminders(), service.DefaultOptions(), zerolog.New(io.Discard))

	res, err := svc.ListReminders(context.Background(), repository.Page{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(3), res.Items[0].ID)
	assert.Equal(t, int64(2), res.Items[1].ID)
}

func TestReminderService_ListReminders_RejectsOutOfRange(t *testing.T) {
	repo := threeReminders()
	svc := service.NewReminderService(repo, service.DefaultOptions(), zerolog.New(io.Discard))

	cases := []struct {
		name  string
		page  repository.Page
		field string
	}{
		{"zero limit", repository.Page{Limit: 0}, "limit"},
		{"negative limit", repository.Page{Limit: -5}, "limit"},
		{"limit above max", repository.Page{Limit: 201}, "limit"},
		{"negative offset", repository.Page{Limit: 10, Offset: -1}, "offset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ListReminders(context.Background(), tc.page)
			require.ErrorIs(t, err, service.ErrInvalidInput)
			fields := service.FieldErrors(err)
			require.NotEmpty(t, fields)
			assert.Equal(t, tc.field, fields[0].Field)
		})
	}
	assert.Zero(t, repo.calls, "invalid pages must not reach storage")
}

func TestReminderService_ListReminders_StorageFailure(t *testing.T) {
	var buf bytes.Buffer
	repo := threeReminders()
	repo.err = repository.MapError("list reminders", errors.New("connection refused"))
	svc := service.NewReminderService(repo, service.DefaultOptions(), zerolog.New(&buf))

	res, err := svc.ListReminders(context.Background(), repository.Page{Limit: 10})
	require.ErrorIs(t, err, repository.ErrStorage)
	assert.Empty(t, res.Items)
	assert.Contains(t, buf.String(), "list reminders failed")
}

func TestReminderService_ListReminders_Deadline(t *testing.T) {
	repo := threeReminders()
	repo.block = true
	opts := service.DefaultOptions()
	opts.QueryTimeout = 20 * time.Millisecond
	svc := service.NewReminderService(repo, opts, zerolog.New(io.Discard))

	start := time.Now()
	_, err := svc.ListReminders(context.Background(), repository.Page{Limit: 10})
	require.ErrorIs(t, err, repository.ErrStorage)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, repository.IsTransient(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestReminderService_ListReminders_Idempotent(t *testing.T) {
	svc := service.NewReminderService(threeReminders(), service.DefaultOptions(), zerolog.New(io.Discard))
	p := repository.Page{Limit: 2, Offset: 1}

	a, err := svc.ListReminders(context.Background(), p)
	require.NoError(t, err)
	b, err := svc.ListReminders(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReminderService_GetReminder(t *testing.T) {
	svc := service.NewReminderService(threeReminders(), service.DefaultOptions(), zerolog.New(io.Discard))

	t.Run("with owner", func(t *testing.T) {
		d, err := svc.GetReminder(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, d.User)
		assert.Equal(t, "Ann", d.User.DisplayName)
	})
	t.Run("owner missing", func(t *testing.T) {
		d, err := svc.GetReminder(context.Background(), 3)
		require.NoError(t, err)
		assert.Nil(t, d.User)
	})
	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetReminder(context.Background(), 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
	t.Run("invalid id", func(t *testing.T) {
		_, err := svc.GetReminder(context.Background(), 0)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestReminderService_CountReminders(t *testing.T) {
	svc := service.NewReminderService(threeReminders(), service.DefaultOptions(), zerolog.New(io.Discard))
	n, err := svc.CountReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
