package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
	"github.com/rs/zerolog"
)

type userService struct {
	repo repository.UserRepository
	opts Options
	log  zerolog.Logger
}

func NewUserService(repo repository.UserRepository, opts Options, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{repo: repo, opts: opts, log: l}
}

func (s *userService) GetUser(ctx context.Context, id string) (model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.User{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must not be empty"}})
	}
	ctx, cancel := s.opts.withDeadline(ctx)
	defer cancel()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("user_id", id).Msg("get user failed")
		}
		return model.User{}, err
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context, page repository.Page) (repository.PageResult[model.User], error) {
	if err := validatePage(page, s.opts.Limits); err != nil {
		return repository.PageResult[model.User]{}, err
	}
	ctx, cancel := s.opts.withDeadline(ctx)
	defer cancel()

	res, err := s.repo.List(ctx, page)
	if err != nil {
		s.log.Error().Err(err).Int("limit", page.Limit).Int("offset", page.Offset).Msg("list users failed")
		return repository.PageResult[model.User]{}, err
	}
	return res, nil
}
