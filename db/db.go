package db

import (
	"albumserver/config"
	"log"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init connects to MySQL when MYSQL_DSN is configured and falls back to SQLITE_FILE otherwise
func Init() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	if config.MYSQL_DSN != "" {
		if dsn, perr := mysql.ParseDSN(config.MYSQL_DSN); perr == nil {
			log.Printf("Using MySQL database %q at %s", dsn.DBName, dsn.Addr)
		}
		db, err = gorm.Open(gormmysql.Open(config.MYSQL_DSN), gormConfig())
	} else if config.SQLITE_FILE != "" {
		log.Printf("Using SQLite database %s", config.SQLITE_FILE)
		db, err = OpenSQLite(config.SQLITE_FILE)
	} else {
		log.Fatal("Neither MYSQL_DSN nor SQLITE_FILE is configured")
	}
	if err != nil || db == nil {
		panic(err)
	}
	return db
}

// OpenSQLite opens (or creates) a SQLite database file.
// Writers wait on each other through the busy timeout instead of failing straight away.
func OpenSQLite(file string) (*gorm.DB, error) {
	cfg := gormConfig()
	cfg.PrepareStmt = false
	return gorm.Open(sqlite.Open(file+"?_busy_timeout=5000&_foreign_keys=on"), cfg)
}

func gormConfig() *gorm.Config {
	level := logger.Warn
	if config.DEBUG_MODE {
		level = logger.Info
	}
	return &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(level),
	}
}
