package bench

import (
	"database/sql"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sqlet/sqlet/sqletdrv"
	_ "modernc.org/sqlite"
)

func benchDBPath(dir, name string) (string, error) {
	dbPath := path.Join(dir, name, "bench.db")

	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return "", err
	}
	fmt.Printf("%s db path: %s\n", name, dbPath)

	return dbPath, nil
}

func createSqletDriver(dir string) (*sqlx.DB, error) {
	dbPath, err := benchDBPath(dir, "sqlet")
	if err != nil {
		return nil, err
	}

	connector := sqletdrv.NewConnector(
		dbPath,
		sqletdrv.WithBusyTimeout(5*time.Second),
		sqletdrv.WithPostConnectQueries([]string{
			"PRAGMA journal_mode = WAL",
		}),
	)

	db := sqlx.NewDb(sql.OpenDB(connector), "sqlet")
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func createMattnDriver(dir string) (*sqlx.DB, error) {
	dbPath, err := benchDBPath(dir, "mattn")
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func createModerncDriver(dir string) (*sqlx.DB, error) {
	dbPath, err := benchDBPath(dir, "modernc")
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
