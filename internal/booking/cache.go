package booking

import (
	"context"
	"encoding/json"
	"fmt"
)

func (s *Service) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.redis == nil || s.cacheTTL <= 0 {
		return false
	}
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (s *Service) writeCache(ctx context.Context, key string, val interface{}) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = s.redis.Set(ctx, key, data, s.cacheTTL).Err()
}

// invalidateSlots drops every cached duration for a staff member's day
// after the appointment book changes.
func (s *Service) invalidateSlots(ctx context.Context, staffID, date string) {
	s.dropCached(ctx, fmt.Sprintf("slots:%s:%s:*", staffID, date))
}

// InvalidateStaffSlots drops every cached slot list of one staff member,
// for when their personal calendar changes.
func (s *Service) InvalidateStaffSlots(ctx context.Context, staffID string) {
	s.dropCached(ctx, fmt.Sprintf("slots:%s:*", staffID))
}

// InvalidateAllSlots drops every cached slot list, for when the salon
// operating calendar changes.
func (s *Service) InvalidateAllSlots(ctx context.Context) {
	s.dropCached(ctx, "slots:*")
}

func (s *Service) dropCached(ctx context.Context, pattern string) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		_ = s.redis.Del(ctx, iter.Val()).Err()
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Str("pattern", pattern).Msg("slot cache invalidation failed")
	}
}
