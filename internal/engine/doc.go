// Package engine contains the simulation state and the tick advancement
// logic. This is the heartbeat of the Rat News Network.
//
// ARCHITECTURAL RULE: all state mutation goes through the Store, which
// serializes commands behind a single mutex. The Clock is a pure function
// over snapshots; the Loop only feeds it wall-clock cadence.
package engine
