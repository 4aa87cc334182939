// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package websocket pushes pipeline progress to dashboard clients.

A single Hub owns the client set. Clients register through ServeWS and
receive every broadcast; the only frame a client may send is a ping, which
is answered with a pong.

Message types:

  - similarity_progress: one similarity search settled (done/total)
  - analysis_started, analysis_completed, analysis_failed: pipeline runs
  - report_completed: a report artifact is ready
  - ping, pong: application-level keepalive

Broadcasts never block the caller. When the hub queue is full the message
is dropped, and a client whose send buffer is full is disconnected.

The hub runs under the supervisor via RunWithContext and closes every
client when its context ends.
*/
package websocket
