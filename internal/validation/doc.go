// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package validation wraps go-playground/validator v10 for request DTOs.
//
// A single validator instance is shared process-wide (it caches struct
// metadata) and carries three domain tags: quarter, identifier and isodate.
// Errors are converted to the VALIDATION_ERROR shape used by the API:
//
//	type saveRequest struct {
//	    CompanyID string `validate:"required,identifier"`
//	    Quarter   string `validate:"omitempty,quarter"`
//	}
package validation
