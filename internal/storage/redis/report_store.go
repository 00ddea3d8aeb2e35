package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goodtune/gatesheet/internal/storage"
	"github.com/redis/go-redis/v9"
)

var (
	replaceDay       = redis.NewScript(replaceDayScript)
	deleteDaysBefore = redis.NewScript(deleteDaysBeforeScript)
)

type reportStore struct {
	client *redis.Client
	keys   keySpace
}

// SaveDays replaces the archived rows of every date present in days
func (s *reportStore) SaveDays(ctx context.Context, days []storage.DayReport) error {
	// Group rows by date, keeping first-seen order
	order := make([]string, 0)
	byDate := make(map[string][]storage.DayReport)
	for _, day := range days {
		if _, ok := byDate[day.Date]; !ok {
			order = append(order, day.Date)
		}
		byDate[day.Date] = append(byDate[day.Date], day)
	}

	for _, date := range order {
		score, err := dateScore(date)
		if err != nil {
			return err
		}

		args := []interface{}{s.keys.dayPrefix(), date, score}
		for _, day := range byDate[date] {
			args = append(args,
				seqString(day.Seq),
				day.WorkSeconds,
				day.FlagString(),
				strconv.FormatBool(day.WeekClosed),
				day.WeekWorkedSeconds,
				day.WeekBalanceSeconds,
				day.Source,
				day.ProcessedAt.Format(time.RFC3339Nano),
			)
		}

		if err := replaceDay.Run(ctx, s.client, []string{s.keys.index()}, args...).Err(); err != nil {
			return fmt.Errorf("save day %s: %w", date, err)
		}
	}

	return nil
}

// GetDay returns the archived rows of a single date
func (s *reportStore) GetDay(ctx context.Context, date string) ([]storage.DayReport, error) {
	score, err := dateScore(date)
	if err != nil {
		return nil, err
	}
	bound := strconv.FormatInt(score, 10)

	days, err := s.rangeDays(ctx, bound, bound)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, storage.ErrNotFound
	}
	return days, nil
}

// ListDays returns archived rows in chronological order
func (s *reportStore) ListDays(ctx context.Context, filter storage.DayFilter) ([]storage.DayReport, error) {
	min, max := "-inf", "+inf"
	if filter.From != "" {
		score, err := dateScore(filter.From)
		if err != nil {
			return nil, err
		}
		min = strconv.FormatInt(score, 10)
	}
	if filter.To != "" {
		score, err := dateScore(filter.To)
		if err != nil {
			return nil, err
		}
		max = strconv.FormatInt(score, 10)
	}

	return s.rangeDays(ctx, min, max)
}

// DeleteDaysBefore removes archived rows dated strictly before cutoffDate
func (s *reportStore) DeleteDaysBefore(ctx context.Context, cutoffDate string) (int, error) {
	score, err := dateScore(cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff date: %w", err)
	}

	deleted, err := deleteDaysBefore.Run(ctx, s.client,
		[]string{s.keys.index()}, s.keys.dayPrefix(), score).Int()
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *reportStore) rangeDays(ctx context.Context, min, max string) ([]storage.DayReport, error) {
	members, err := s.client.ZRangeByScore(ctx, s.keys.index(), &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return []storage.DayReport{}, nil
	}

	// Use pipeline for efficient batch retrieval
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(members))
	for i, m := range members {
		cmds[i] = pipe.HGetAll(ctx, s.keys.day(m))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	days := make([]storage.DayReport, 0, len(members))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			continue
		}

		day, err := parseDayReport(data)
		if err != nil {
			return nil, fmt.Errorf("archived row %s: %w", members[i], err)
		}
		days = append(days, *day)
	}

	return days, nil
}
