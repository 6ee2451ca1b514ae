package config

import "github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"

// DBExecutor *sql.DB, *dbmetrics.DB или активная транзакция
type DBExecutor = dbmetrics.DBExecutor
