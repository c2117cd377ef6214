package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sqlet/sqlet/internal/bench/benchbar"
)

type benchmarkManyConfig struct {
	insertXUsers     int
	queryUsersYTimes int
	insertGoroutines int
	queryGoroutines  int
}

type benchUser struct {
	ID      int64  `db:"id"`
	Created int64  `db:"created"`
	Email   string `db:"email"`
	Active  int    `db:"active"`
}

// runBenchmarkMany inserts X users in a single transaction and then query all
// users Y times. This simulates a read-heavy workload.
func runBenchmarkMany(
	db *sqlx.DB, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkManyConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	tx, err := db.Beginx()
	if err != nil {
		return benchmarkResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(
		"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
	)
	if err != nil {
		return benchmarkResult{}, err
	}
	defer func() { _ = stmt.Close() }()

	wgInsert := sync.WaitGroup{}
	chInsert := make(chan bool, conf.insertGoroutines)
	errInsert := make(chan error, conf.insertXUsers)
	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users", conf.insertXUsers), conf.insertXUsers,
	)

	for idx := 0; idx < conf.insertXUsers; idx++ {
		idx := idx
		wgInsert.Add(1)
		chInsert <- true
		go func() {
			defer func() {
				wgInsert.Done()
				<-chInsert
			}()
			res, err := stmt.Exec(
				time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
			)
			if err != nil {
				errInsert <- err
				return
			}
			affected, err := res.RowsAffected()
			if err != nil {
				errInsert <- err
				return
			}

			bar.Inc()
			atomic.AddUint64(&totalWrites, uint64(affected))
		}()
	}

	wgInsert.Wait()
	close(chInsert)
	close(errInsert)

	for e := range errInsert {
		if e != nil {
			return benchmarkResult{}, e
		}
	}
	if err := tx.Commit(); err != nil {
		return benchmarkResult{}, err
	}
	bar.Finish()

	wgQuery := sync.WaitGroup{}
	chQuery := make(chan bool, conf.queryGoroutines)
	errQuery := make(chan error, conf.queryUsersYTimes)
	bar = benchbar.NewBar(
		fmt.Sprintf("Querying all users %d times", conf.queryUsersYTimes),
		conf.queryUsersYTimes,
	)

	for i := 0; i < conf.queryUsersYTimes; i++ {
		wgQuery.Add(1)
		chQuery <- true
		go func() {
			defer func() {
				wgQuery.Done()
				<-chQuery
			}()
			var users []benchUser
			if err := db.Select(
				&users,
				"SELECT id, created, email, active FROM users ORDER BY id",
			); err != nil {
				errQuery <- err
				return
			}
			atomic.AddUint64(&totalReads, uint64(len(users)))

			bar.Inc()
		}()
	}

	wgQuery.Wait()
	close(chQuery)
	close(errQuery)

	for e := range errQuery {
		if e != nil {
			return benchmarkResult{}, e
		}
	}
	bar.Finish()

	return benchmarkResult{
		Name:        "Many",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
