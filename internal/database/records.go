package database

import (
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// RecordsToJSON serializes query records as a JSON array of key/value maps.
func RecordsToJSON(records []*neo4j.Record) (string, error) {
	maps := RecordsToMaps(records)
	data, err := json.MarshalIndent(maps, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling records: %w", err)
	}
	return string(data), nil
}

// RecordsToMaps converts each record into a map keyed by its return fields.
func RecordsToMaps(records []*neo4j.Record) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, record := range records {
		m := make(map[string]any, len(record.Keys))
		for j, key := range record.Keys {
			if j < len(record.Values) {
				m[key] = record.Values[j]
			}
		}
		out[i] = m
	}
	return out
}
