// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/models"
)

func encodeRecord(rec *models.AnalysisRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}
