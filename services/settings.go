package services

import (
	"fmt"
	"strconv"

	"github.com/pocketbase/pocketbase/core"
)

// GetSetting reads one settings value by key, returning fallback when the
// key is missing.
func GetSetting(app core.App, key, fallback string) string {
	records, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": key},
	)
	if err != nil || len(records) == 0 {
		return fallback
	}
	return records[0].GetString("value")
}

// GetSettingFloat reads a numeric settings value, returning fallback when
// the key is missing or not a number.
func GetSettingFloat(app core.App, key string, fallback float64) float64 {
	raw := GetSetting(app, key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// SetSetting upserts one settings key.
func SetSetting(app core.App, key, value string) error {
	records, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": key},
	)
	if err != nil {
		return fmt.Errorf("find setting %s: %w", key, err)
	}

	var record *core.Record
	if len(records) > 0 {
		record = records[0]
	} else {
		col, err := app.FindCollectionByNameOrId("settings")
		if err != nil {
			return fmt.Errorf("settings collection: %w", err)
		}
		record = core.NewRecord(col)
		record.Set("key", key)
	}
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// AllSettings returns every settings key/value pair.
func AllSettings(app core.App) (map[string]string, error) {
	records, err := app.FindAllRecords("settings")
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	out := make(map[string]string, len(records))
	for _, r := range records {
		out[r.GetString("key")] = r.GetString("value")
	}
	return out, nil
}
