// Package inventory implements the triage side of the desk: the
// burn-rate demand forecaster, the reorder-urgency ranking, the
// stability classification used for inventory health reporting, and the
// cycle-count audit rotation.
//
// Everything here is read-only with respect to the shipping path: these
// components consume product and sales snapshots and emit reports. They
// are rebuilt from scratch per reporting cycle rather than incrementally
// maintained, so staleness can never silently persist.
package inventory
