package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"task_tracker/internal/models"
	"task_tracker/internal/repository"
)

type ActivityService struct {
	activities repository.Activities
}

func NewActivityService(activities repository.Activities) *ActivityService {
	return &ActivityService{activities: activities}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	typ := strings.TrimSpace(strings.ToUpper(f.Type))
	return from, to, typ, nil
}

// List returns the user's activity entries matching the filter.
func (s *ActivityService) List(ctx context.Context, userID int, f ActivityFilter) ([]models.Activity, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.activities.List(ctx, userID, from, to, typ)
}
