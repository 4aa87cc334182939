// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package services adapts Terrascope components to suture.Service.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully.
//   - WebSocketHubService runs the websocket hub's event loop.
//   - ResourceService owns an io.Closer (a storage.Store) and closes it when
//     the tree stops.
package services
