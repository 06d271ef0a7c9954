// Package wizard sequences the configure, inspect and summarize phases of
// building an oracle from an HTTP request.
//
// A Wizard owns the request config, the latest response capture and the
// latest verification result. Every mutation goes through its commands;
// readers take immutable snapshots with Snapshot.
//
// Only one network-bound command (Next from the first step, VerifyPath,
// Deploy) runs at a time. A second one started while the first is in flight
// fails with ErrBusy instead of queueing.
package wizard
