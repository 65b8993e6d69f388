package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"medtrust/internal/patient"
)

// LoadSeed reads a list of records from a YAML or JSON file.
func LoadSeed(path string) ([]patient.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patient seed: %w", err)
	}
	var records []patient.Record
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse patient seed %s: %w", path, err)
	}
	for i := range records {
		if records[i].Name == "" {
			return nil, fmt.Errorf("patient seed %s: record %d has no name", path, i)
		}
		if records[i].ID == "" {
			records[i].ID = patient.ID(records[i].Name)
		}
	}
	return records, nil
}

// Upserter is a store that accepts seeded records.
type Upserter interface {
	Upsert(ctx context.Context, r patient.Record) error
}

// Seed writes every record into dst.
func Seed(ctx context.Context, dst Upserter, records []patient.Record) error {
	for _, r := range records {
		if err := dst.Upsert(ctx, r); err != nil {
			return fmt.Errorf("seed patient %s: %w", r.ID, err)
		}
	}
	return nil
}
