// Package deploy hands a finalized request config to whatever turns it into
// a running oracle.
//
// Deployers receive the request config, the selected path and the last
// verification result. Two are provided:
//   - OperatorDeployer posts the definition to an operator service
//   - FileDeployer writes it as a manifest for later use
//
// QueryClient reads the outputs reported by operators for a deployed oracle.
package deploy
