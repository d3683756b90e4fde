package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/rs/zerolog"
)

// reminderService holds reminder read logic: validation + deadlines, no transport or SQL details.
type reminderService struct {
	repo repository.ReminderRepository
	opts Options
	log  zerolog.Logger
}

func NewReminderService(repo repository.ReminderRepository, opts Options, logger zerolog.Logger) ReminderService {
	l := logger.With().Str("module", "service").Str("component", "reminder").Logger()
	return &reminderService{repo: repo, opts: opts, log: l}
}

func (s *reminderService) GetReminder(ctx context.Context, id int64) (model.ReminderDetail, error) {
	if id <= 0 {
		return model.ReminderDetail{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	ctx, cancel := s.opts.withDeadline(ctx)
	defer cancel()

	out, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("reminder_id", id).Bool("transient", repository.IsTransient(err)).Msg("get reminder failed")
		}
		return model.ReminderDetail{}, err
	}
	return out, nil
}

func (s *reminderService) ListReminders(ctx context.Context, page repository.Page) (repository.PageResult[model.Reminder], error) {
	if err := validatePage(page, s.opts.Limits); err != nil {
		return repository.PageResult[model.Reminder]{}, err
	}
	start := time.Now()
	ctx, cancel := s.opts.withDeadline(ctx)
	defer cancel()

	res, err := s.repo.List(ctx, page)
	if err != nil {
		s.log.Error().Err(err).
			Int("limit", page.Limit).
			Int("offset", page.Offset).
			Bool("transient", repository.IsTransient(err)).
			Msg("list reminders failed")
		return repository.PageResult[model.Reminder]{}, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("total", res.Total).Int("returned", len(res.Items)).Msg("reminders listed")
	return res, nil
}

func (s *reminderService) CountReminders(ctx context.Context) (int, error) {
	ctx, cancel := s.opts.withDeadline(ctx)
	defer cancel()

	n, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("count reminders failed")
		return 0, err
	}
	return n, nil
}
