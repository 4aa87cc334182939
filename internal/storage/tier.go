// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"strings"

	"github.com/tomtom215/terrascope/internal/models"
)

// Tier is one storage layer. Missing keys return models.ErrNotFound.
//
// Latest returns the record written last for the company, by arrival
// order, regardless of its quarter.
type Tier interface {
	Name() string
	Put(ctx context.Context, companyID, quarter string, rec *models.AnalysisRecord) error
	Get(ctx context.Context, companyID, quarter string) (*models.AnalysisRecord, error)
	Latest(ctx context.Context, companyID string) (*models.AnalysisRecord, error)
	HasKey(ctx context.Context, companyID, quarter string) (bool, error)
	Close() error
}

// Key prefixes shared by the key-value tiers.
const (
	recordKeyPrefix = "analysis:"
	latestKeyPrefix = "latest:"
)

func recordKey(companyID, quarter string) string {
	return recordKeyPrefix + companyID + ":" + quarter
}

func latestKey(companyID string) string {
	return latestKeyPrefix + companyID
}

// maxCompanyIDLength bounds company IDs used as keys and path components.
const maxCompanyIDLength = 128

// ValidateCompanyID rejects IDs that cannot be stored safely as a key or a
// single path component.
func ValidateCompanyID(companyID string) error {
	switch {
	case companyID == "":
		return models.Precondition("company id is required")
	case len(companyID) > maxCompanyIDLength:
		return models.Precondition("company id longer than %d characters", maxCompanyIDLength)
	case companyID == "." || companyID == "..":
		return models.Precondition("invalid company id %q", companyID)
	case strings.ContainsAny(companyID, "/\\:\x00"):
		return models.Precondition("company id %q contains a reserved character", companyID)
	}
	return nil
}
