package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// errKeyNotFound is returned by kvStore.Get when nothing is stored under a key.
var errKeyNotFound = errors.New("key not found")

// kvStore is a namespaced key-value store holding JSON documents. Callers do
// read-modify-write per request with no locking across calls, so two
// concurrent writers to the same key can lose an update.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Logical storage keys.
const (
	keyUserProfile     = "nutriai_user_profile"
	keyNutritionGoals  = "nutriai_nutrition_goals"
	keyDailyNutrition  = "nutriai_daily_nutrition"
	keyMealPlans       = "nutriai_meal_plans"
	keyUserStats       = "nutriai_user_stats"
	keyNutritionTrends = "nutriai_nutrition_trends"
)

var allStorageKeys = []string{
	keyUserProfile, keyNutritionGoals, keyDailyNutrition,
	keyMealPlans, keyUserStats, keyNutritionTrends,
}

// loadJSON reads key and decodes it into T. ok is false when the key is absent.
func loadJSON[T any](ctx context.Context, s kvStore, key string) (T, bool, error) {
	var zero T
	raw, err := s.Get(ctx, key)
	if errors.Is(err, errKeyNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

// loadMap reads a date- or id-keyed map, returning an empty map when absent.
func loadMap[V any](ctx context.Context, s kvStore, key string) (map[string]V, error) {
	m, ok, err := loadJSON[map[string]V](ctx, s, key)
	if err != nil {
		return nil, err
	}
	if !ok || m == nil {
		m = map[string]V{}
	}
	return m, nil
}

// saveJSON encodes v and stores it under key.
func saveJSON(ctx context.Context, s kvStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// clearAll deletes every logical key.
func clearAll(ctx context.Context, s kvStore) error {
	for _, k := range allStorageKeys {
		if err := s.Delete(ctx, k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

/* ─── Full-state export / import ─────────────────────────────────────── */

// exportDocument is the full-state backup. On import every nil field is
// skipped, so partial documents only replace the keys they carry.
type exportDocument struct {
	Profile        *userProfile           `json:"profile"`
	Goals          *nutritionGoals        `json:"goals"`
	DailyNutrition map[string]dailyRecord `json:"dailyNutrition"`
	MealPlans      map[string]mealPlan    `json:"mealPlans"`
	Stats          *userStats             `json:"stats"`
	Trends         map[string]trendPoint  `json:"trends"`
	ExportDate     time.Time              `json:"exportDate"`
}

// loadPtr is loadJSON returning nil for an absent key.
func loadPtr[T any](ctx context.Context, s kvStore, key string) (*T, error) {
	v, ok, err := loadJSON[T](ctx, s, key)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// exportAll reads every key concurrently into one document.
func exportAll(ctx context.Context, s kvStore, now time.Time) (exportDocument, error) {
	doc := exportDocument{ExportDate: now.UTC()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		doc.Profile, err = loadPtr[userProfile](gctx, s, keyUserProfile)
		return err
	})
	g.Go(func() (err error) {
		doc.Goals, err = loadPtr[nutritionGoals](gctx, s, keyNutritionGoals)
		return err
	})
	g.Go(func() (err error) {
		doc.DailyNutrition, err = loadMap[dailyRecord](gctx, s, keyDailyNutrition)
		return err
	})
	g.Go(func() (err error) {
		doc.MealPlans, err = loadMap[mealPlan](gctx, s, keyMealPlans)
		return err
	})
	g.Go(func() (err error) {
		doc.Stats, err = loadPtr[userStats](gctx, s, keyUserStats)
		return err
	})
	g.Go(func() (err error) {
		doc.Trends, err = loadMap[trendPoint](gctx, s, keyNutritionTrends)
		return err
	})

	if err := g.Wait(); err != nil {
		return exportDocument{}, fmt.Errorf("export: %w", err)
	}
	return doc, nil
}

// importAll writes each present section of doc, replacing what was stored.
// Returns the keys that were written.
func importAll(ctx context.Context, s kvStore, doc exportDocument) ([]string, error) {
	type section struct {
		key     string
		present bool
		value   any
	}
	sections := []section{
		{keyUserProfile, doc.Profile != nil, doc.Profile},
		{keyNutritionGoals, doc.Goals != nil, doc.Goals},
		{keyDailyNutrition, doc.DailyNutrition != nil, doc.DailyNutrition},
		{keyMealPlans, doc.MealPlans != nil, doc.MealPlans},
		{keyUserStats, doc.Stats != nil, doc.Stats},
		{keyNutritionTrends, doc.Trends != nil, doc.Trends},
	}

	written := []string{}
	for _, sec := range sections {
		if !sec.present {
			continue
		}
		if err := saveJSON(ctx, s, sec.key, sec.value); err != nil {
			return written, fmt.Errorf("import: %w", err)
		}
		written = append(written, sec.key)
	}
	return written, nil
}
