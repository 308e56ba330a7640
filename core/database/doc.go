// Package database handles database connections for the ERP core service.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures MySQL connections for production and SQLite connections for
// tests and single-node deployments.
//
// # Connect
//
// The Connect function establishes a connection based on the configured
// driver. It applies pool limits and verifies the connection with a ping
// before returning.
//
// # Transactions
//
// The attendance reconciler and the reservation sweeper both rely on
// GORM transactions with row-level locking reads (SELECT ... FOR UPDATE)
// obtained through gorm.io/gorm/clause. SQLite serializes writers at the
// database level, so the same code paths remain correct under the test
// driver even though it ignores the lock clause.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
