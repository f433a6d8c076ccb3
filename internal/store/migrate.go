package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/stats"
)

// ErrUnsupportedVersion is returned for payloads written by a newer release.
var ErrUnsupportedVersion = errors.New("unsupported stats schema version")

type rawRecord map[string]json.RawMessage

// migrations[v] upgrades a version v payload to v+1.
var migrations = []func(rawRecord) error{
	migrateV0,
}

// DecodeRecord parses a stored payload of any known version into the current
// layout and recomputes derived fields.
func DecodeRecord(data []byte) (model.StatsRecord, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.StatsRecord{}, fmt.Errorf("failed to parse stats payload: %w", err)
	}
	if raw == nil {
		return model.StatsRecord{}, fmt.Errorf("stats payload is null")
	}
	version := 0
	if v, ok := raw["schemaVersion"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return model.StatsRecord{}, fmt.Errorf("failed to parse schema version: %w", err)
		}
	}
	if version > model.SchemaVersion || version < 0 {
		return model.StatsRecord{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	for ; version < model.SchemaVersion; version++ {
		if err := migrations[version](raw); err != nil {
			return model.StatsRecord{}, fmt.Errorf("failed to migrate from version %d: %w", version, err)
		}
	}

	upgraded, err := json.Marshal(raw)
	if err != nil {
		return model.StatsRecord{}, fmt.Errorf("failed to re-encode stats payload: %w", err)
	}
	var rec model.StatsRecord
	if err := json.Unmarshal(upgraded, &rec); err != nil {
		return model.StatsRecord{}, fmt.Errorf("failed to decode stats record: %w", err)
	}
	rec.SchemaVersion = model.SchemaVersion
	if rec.ItemStats == nil {
		rec.ItemStats = map[string]model.ItemStat{}
	}
	if rec.SessionHistory == nil {
		rec.SessionHistory = []model.QuizSession{}
	}
	return stats.Normalize(rec), nil
}

// EncodeRecord serializes rec stamped with the current schema version.
func EncodeRecord(rec model.StatsRecord) ([]byte, error) {
	rec.SchemaVersion = model.SchemaVersion
	if rec.ItemStats == nil {
		rec.ItemStats = map[string]model.ItemStat{}
	}
	if rec.SessionHistory == nil {
		rec.SessionHistory = []model.QuizSession{}
	}
	return json.Marshal(rec)
}

// migrateV0 upgrades the unversioned browser layout, which keyed items under
// "kanjiStats" with a "kanji" id field and kept sessions in "quizHistory".
func migrateV0(raw rawRecord) error {
	if legacy, ok := raw["kanjiStats"]; ok {
		if _, exists := raw["itemStats"]; !exists {
			var items map[string]map[string]json.RawMessage
			if err := json.Unmarshal(legacy, &items); err != nil {
				return fmt.Errorf("kanjiStats: %w", err)
			}
			for key, item := range items {
				if item == nil {
					delete(items, key)
					continue
				}
				if id, ok := item["kanji"]; ok {
					if _, has := item["id"]; !has {
						item["id"] = id
					}
					delete(item, "kanji")
				}
			}
			encoded, err := json.Marshal(items)
			if err != nil {
				return err
			}
			raw["itemStats"] = encoded
		}
		delete(raw, "kanjiStats")
	}
	if legacy, ok := raw["quizHistory"]; ok {
		if _, exists := raw["sessionHistory"]; !exists {
			raw["sessionHistory"] = legacy
		}
		delete(raw, "quizHistory")
	}
	raw["schemaVersion"] = json.RawMessage("1")
	return nil
}
