package auth

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// InitDB opens the PostgreSQL pool named by DATABASE_URL and fails fast when
// the database does not answer.
func InitDB() *sql.DB {
	db, err := sql.Open("postgres", connString(os.Getenv("DATABASE_URL")))
	if err != nil {
		log.Fatal("database config error: ", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		log.Fatal("database is not responding: ", err)
	}
	return db
}

func connString(connStr string) string {
	if connStr == "" {
		connStr = "user=postgres dbname=retrofit password=password sslmode=disable"
	}
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		sep := "?"
		if strings.Contains(connStr, "?") {
			sep = "&"
		}
		return connStr + sep + "sslmode=require"
	}
	return connStr + " sslmode=require"
}
