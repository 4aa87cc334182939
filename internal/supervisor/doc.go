// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Package supervisor runs the long-lived Terrascope services under a suture v4
supervisor tree.

The tree has three layers so that a crash in one does not take the others
down:

	terrascope
	├── storage-layer
	│   └── ResourceService (analysis store, persistence store)
	├── messaging-layer
	│   └── WebSocketHubService
	└── api-layer
	    └── HTTPServerService

Supervisor events are logged through sutureslog, which in turn writes into the
zerolog stream via logging.NewSlogLogger.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
