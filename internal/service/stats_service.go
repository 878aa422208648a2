package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"writer-coach-be/internal/dto"
	"writer-coach-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	statsDayTTL  = 31 * 24 * time.Hour
	statsDaySpan = 30 // days of history kept for range sums
)

type IStatsService interface {
	// AddText credits the user's counters with one written message.
	// Failures degrade to a warning; counting never blocks the dialog.
	AddText(ctx context.Context, userID, text string)
	Stats(ctx context.Context, userID string) (*dto.WordStats, error)
	Reset(ctx context.Context, userID string) error
}

type statsService struct {
	rdb    *redis.Client
	logger logger.ILogger
}

func NewStatsService(rdb *redis.Client, log logger.ILogger) IStatsService {
	return &statsService{rdb: rdb, logger: log}
}

func dayKey(userID, day, field string) string {
	return "stats:" + userID + ":day:" + day + ":" + field
}

func totalKey(userID, field string) string {
	return "stats:" + userID + ":total:" + field
}

func (s *statsService) AddText(ctx context.Context, userID, text string) {
	words := int64(len(strings.Fields(text)))
	chars := int64(len([]rune(text)))
	if words == 0 && chars == 0 {
		return
	}

	day := time.Now().Format("2006-01-02")

	pipe := s.rdb.Pipeline()
	wordsKey := dayKey(userID, day, "words")
	charsKey := dayKey(userID, day, "chars")
	pipe.IncrBy(ctx, wordsKey, words)
	pipe.Expire(ctx, wordsKey, statsDayTTL)
	pipe.IncrBy(ctx, charsKey, chars)
	pipe.Expire(ctx, charsKey, statsDayTTL)
	pipe.IncrBy(ctx, totalKey(userID, "words"), words)
	pipe.IncrBy(ctx, totalKey(userID, "chars"), chars)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("stats", "failed to record word counts", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
	}
}

func (s *statsService) Stats(ctx context.Context, userID string) (*dto.WordStats, error) {
	now := time.Now()
	today := now.Format("2006-01-02")

	todayWords, err := s.getInt(ctx, dayKey(userID, today, "words"))
	if err != nil {
		return nil, err
	}
	todayChars, err := s.getInt(ctx, dayKey(userID, today, "chars"))
	if err != nil {
		return nil, err
	}

	weekWords, err := s.sumDays(ctx, userID, now, 7)
	if err != nil {
		return nil, err
	}
	monthWords, err := s.sumDays(ctx, userID, now, statsDaySpan)
	if err != nil {
		return nil, err
	}

	totalWords, err := s.getInt(ctx, totalKey(userID, "words"))
	if err != nil {
		return nil, err
	}

	return &dto.WordStats{
		TodayWords: todayWords,
		TodayChars: todayChars,
		WeekWords:  weekWords,
		MonthWords: monthWords,
		TotalWords: totalWords,
	}, nil
}

func (s *statsService) Reset(ctx context.Context, userID string) error {
	now := time.Now()
	keys := []string{
		totalKey(userID, "words"),
		totalKey(userID, "chars"),
	}
	for i := 0; i <= statsDaySpan; i++ {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		keys = append(keys, dayKey(userID, day, "words"), dayKey(userID, day, "chars"))
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *statsService) getInt(ctx context.Context, key string) (int64, error) {
	v, err := s.rdb.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

func (s *statsService) sumDays(ctx context.Context, userID string, now time.Time, days int) (int64, error) {
	keys := make([]string, days)
	for i := 0; i < days; i++ {
		keys[i] = dayKey(userID, now.AddDate(0, 0, -i).Format("2006-01-02"), "words")
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		sum += n
	}
	return sum, nil
}
