// Package cmd implements the pathpick CLI commands using Cobra.
//
// Available commands:
//   - wizard: Interactive configure, inspect and summarize flow
//   - fetch: Execute a request once and print every selectable path
//   - verify: Re-check that a selected path resolves on a fresh call
//   - deploy: Hand a verified manifest to the operator network
//   - run: Perform the one-shot oracle task from env or a manifest
//   - query: Show operator results for a deployed oracle
//   - history: Show recorded verifications
//   - list / validate: Inspect saved manifests
//   - init: Create a config file and an example manifest
//   - version: Show pathpick version information
//
// Flags default from PATHPICK_* environment variables; the config file
// supplies transport settings and locations.
package cmd
