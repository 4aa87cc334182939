// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package taskgroup runs independent tasks concurrently and reports how
// many have settled.
//
// Unlike a bare errgroup, a failing task does not cancel its siblings:
// every task settles on its own and its error is kept in its Result. The
// group answers the two questions the dashboard asks while a fan-out is in
// flight, "N of M done" (Done, Total) and "is any result usable yet"
// (AnySucceeded).
//
//	g := taskgroup.New[[]models.SimilarArea](ctx, "similarity",
//	    taskgroup.WithLimit(4),
//	    taskgroup.WithProgress(func(p taskgroup.Progress) {
//	        hub.BroadcastJSON("similarity_progress", p)
//	    }))
//	for _, area := range areas {
//	    g.Go(func(ctx context.Context) ([]models.SimilarArea, error) {
//	        return client.FindSimilarAreas(ctx, area, params)
//	    })
//	}
//	results := g.Wait() // submission order
package taskgroup
