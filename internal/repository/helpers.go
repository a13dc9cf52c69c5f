package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/wellnessflow/api/internal/database"
)

// isUniqueConstraintError checks if an error is a unique index violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already contains") ||
		strings.Contains(errStr, "already exists")
}

// extractQueryResults extracts the record array of the first statement
// from a SurrealDB response
func extractQueryResults(result []interface{}) []interface{} {
	if len(result) == 0 {
		return nil
	}
	if resp, ok := result[0].(map[string]interface{}); ok {
		if records, ok := resp["result"].([]interface{}); ok {
			return records
		}
		if record, ok := resp["result"].(map[string]interface{}); ok {
			return []interface{}{record}
		}
		if _, ok := resp["status"]; ok {
			return nil
		}
	}
	// Direct array format
	return result
}

// firstRecord returns the first record of a query response or ErrNotFound
func firstRecord(result []interface{}) (map[string]interface{}, error) {
	records := extractQueryResults(result)
	if len(records) == 0 {
		return nil, database.ErrNotFound
	}
	data, ok := records[0].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return data, nil
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt64 extracts an integer value from a map. CBOR decoding yields
// unsigned or signed integers depending on magnitude; JSON yields floats.
func getInt64(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	case int:
		return int64(v)
	case uint32:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	}
	return 0
}
