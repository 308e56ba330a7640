// Package attendance implements the attendance ingestion feature.
//
// Hardware punch-clocks post timestamped in/out events for employees; the
// reconciler folds those events into one attendance record per employee
// and calendar day.
//
// # Reconciliation Rules
//
//   - The day-bucket is found-or-created atomically under the
//     (employee_id, date) unique index, so concurrent first punches of the
//     day converge on a single row.
//   - Check-in is first-writer-wins: once set, later "in" events for the
//     same day are ignored. The first check-in marks the record present and
//     flags lateness against the configured cutoff (default 09:00, compared
//     in the zone the event timestamp carries).
//   - Check-out is latest-writer-wins and only ever advances. When a
//     check-in exists, total hours are recomputed at whole-minute precision.
//   - An "out" arriving before any "in" is stored as-is; total hours stay at
//     zero until a check-out is applied with a check-in present.
//
// # Components
//
//   - Service: Validates events, resolves employees and applies the rules
//     inside one transaction per event.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application and places the
//     device key gateway in front of the ingestion endpoint.
//
// # HTTP Endpoints
//
//   - POST /attendance : Ingest a punch event (device-authenticated).
//   - GET /attendance/:employee_code : Recent records for an employee.
package attendance
