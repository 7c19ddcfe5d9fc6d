// Package harness runs YAML-defined fulfillment scenarios against a
// fresh in-memory ledger and desk. Each scenario seeds a catalog,
// drives intake, dispatch and reconciliation steps, and checks the
// resulting queue, blocked list and step trace. Traces are
// deterministic, so they can be pinned with golden files.
package harness
