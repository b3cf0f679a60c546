// Package app wires the dashboard server together: configuration,
// logging, OpenTelemetry, the dataset store, the page services and the
// chi router with its middleware chain.
//
// Initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Create the dataset loader and store
//	4. Initialize the dashboard and health services
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//
// The dataset cache is warmed in the background after the server
// starts listening. Missing data files degrade pages with warnings
// but never stop startup.
//
// All initialization errors are returned to the caller. The package
// does not call os.Exit() directly; main controls the exit process.
package app
