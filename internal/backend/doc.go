// Package backend implements the remote save operation the autosave
// pipeline submits snapshots to.
//
// Two Savers are provided:
//
//   - Simulator: in-process, waits a fixed latency on an injected clock and
//     fails a configurable fraction of saves with a random StatusCode.
//   - Client: PUTs the snapshot as JSON to <endpoint>/api/form and decodes
//     the stored snapshot from the response.
//
// A failed save is reported as a *StatusError. Any other error (transport,
// decoding, cancellation) is a failure without a recognized status; callers
// use CodeOf to tell the two apart.
package backend
