// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package report turns a company's operational and reference areas into a
narrative environmental-impact report.

Generation is a single pass with no retry:

 1. BuildPrompt assembles the instruction document.
 2. LLMClient submits it once and returns the raw text.
 3. SplitSections cuts the text into titled sections. The split is a
    heuristic; text without recognizable headings becomes one section.
 4. A Renderer writes the printable artifact.

Each stage fails with its own error so callers can tell them apart:
ErrAuthFailed for rejected credentials, models.ErrUpstreamUnavailable for
other LLM failures and models.ErrRenderingFailure once the text was already
obtained.
*/
package report
