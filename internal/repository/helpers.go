package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pageturners/api/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// convertID converts a SurrealDB record ID to its string form
func convertID(id interface{}) string {
	if str, ok := id.(string); ok {
		return str
	}
	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if m, ok := id.(map[string]interface{}); ok {
		if tb, ok := m["tb"].(string); ok {
			if idVal, ok := m["id"]; ok {
				return fmt.Sprintf("%s:%v", tb, idVal)
			}
		}
		if tb, ok := m["Table"].(string); ok {
			if idVal, ok := m["ID"]; ok {
				return fmt.Sprintf("%s:%v", tb, idVal)
			}
		}
	}
	return fmt.Sprintf("%v", id)
}

// unwrapRecords flattens a Query result into the list of records it
// carries, handling the {status, result} wrapper per statement
func unwrapRecords(results []interface{}) []interface{} {
	records := make([]interface{}, 0)
	for _, result := range results {
		resp, ok := result.(map[string]interface{})
		if !ok {
			records = append(records, result)
			continue
		}
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				records = append(records, resultData...)
				continue
			}
			records = append(records, resp["result"])
			continue
		}
		records = append(records, result)
	}
	return records
}

// decodeRecord converts a raw store record into T via a JSON round trip,
// normalizing the record id (and any listed reference fields) first
func decodeRecord[T any](result interface{}, idFields ...string) (*T, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	if id, ok := data["id"]; ok {
		data["id"] = convertID(id)
	}
	for _, field := range idFields {
		if v, ok := data[field]; ok && v != nil {
			data[field] = convertID(v)
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var record T
	if err := json.Unmarshal(jsonBytes, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// decodeRecords converts a list of raw store records into []*T
func decodeRecords[T any](results []interface{}, idFields ...string) ([]*T, error) {
	records := make([]*T, 0, len(results))
	for _, r := range unwrapRecords(results) {
		record, err := decodeRecord[T](r, idFields...)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// extractCount pulls a count() value out of a GROUP ALL result
func extractCount(result interface{}) int {
	if data, ok := result.(map[string]interface{}); ok {
		switch v := data["count"].(type) {
		case float64:
			return int(v)
		case int64:
			return int(v)
		case int:
			return v
		case uint64:
			return int(v)
		}
	}
	return 0
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
