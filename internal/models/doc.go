// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package models defines the data structures shared by the Terrascope pipeline.

Model categories:

 1. Areas:
    - Company: an analysed company and its registered facilities
    - OperationalArea: a company-controlled ("red") area with one bounding box
    - SimilarArea: an environmentally comparable ("green") reference area
    returned by the similarity service, with its feature bundle

 2. Industrial analysis:
    - IndustrialResponse: one raw response of the industrial-analysis service
    - BatchAnalysisResult: the combined result of one "perform analysis"
    action and the unit of persistence

 3. Derived series:
    - AnalysisMetric, MetricPoint, Trend: chart-ready series regenerated from
    a BatchAnalysisResult on demand and never stored independently

 4. Persistence:
    - AnalysisRecord: the per company, per quarter record
    - AnalysisStatus: not_analyzed, analyzed or new_quarter

 5. Errors:
    - the error taxonomy shared by all clients (see errors.go)

 6. API envelope:
    - APIResponse, APIError, Metadata

JSON tags follow the wire contracts of the external services (snake_case) and
of the dashboard client (camelCase for persisted records).
*/
package models
