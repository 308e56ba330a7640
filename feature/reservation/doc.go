// Package reservation implements the reservation expiry feature.
//
// Bookings place a hold on an inventory unit via a reservation with an
// expiry time. The sweeper finds every active reservation past its expiry,
// marks it expired and releases the unit back to available.
//
// # Atomicity
//
// One sweep cycle is one database transaction. The stale batch is selected
// with a write-intent lock (SELECT ... FOR UPDATE), so overlapping sweep
// runs and racing booking confirmations serialize on the same rows. A unit
// is only released when it is still reserved at the moment of the locked
// re-check; a unit moved to any other state by the booking module is left
// untouched. Any failure rolls back the whole cycle, and the next run
// naturally retries because selection is by current state.
//
// # Invocation
//
// The sweep runs as the scheduled `sweep` CLI subcommand and is also exposed
// as an on-demand maintenance endpoint:
//
//   - POST /reservations/sweep : Run one sweep cycle, returns the count.
package reservation
