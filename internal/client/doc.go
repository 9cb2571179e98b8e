// Package client implements the device-side application runtime.
//
// It wires the local storages, the remote store adapter, the connectivity
// monitor and the background sync job into a single process lifecycle. The
// record services it exposes are the integration surface for any UI put on
// top.
package client
