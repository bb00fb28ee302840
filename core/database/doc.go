// Package database handles connections for the reconciliation audit trail.
//
// It wraps GORM (Go Object Relational Mapping) and configures the driver
// named in the application configuration: MySQL for shared deployments,
// SQLite for local use and tests.
//
// # Connect
//
// Connect is agnostic to the audit schema; feature packages own their
// models and migrations. The audit trail is an optional subsystem, so a
// failed connection should degrade the application rather than stop it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Audit trail disabled", zap.Error(err))
//	}
package database
