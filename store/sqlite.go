package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/stealth/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the outcome of finished missions. Nothing about a
// running session is stored.
type SQLiteStore struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	mu   sync.RWMutex
	done bool
}

type req struct {
	result model.Result
	at     time.Time
	flush  chan struct{}
}

type Score struct {
	Message    string    `json:"message"`
	Won        bool      `json:"won"`
	Score      int       `json:"score"`
	TimeBonus  int       `json:"time_bonus"`
	RecordedAt time.Time `json:"recorded_at"`
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{
		db: db,
		ch: make(chan req, 1024),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT NOT NULL,
			won INTEGER NOT NULL,
			score INTEGER NOT NULL,
			time_bonus INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_score ON results(score DESC, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record queues r for the writer. It never blocks; a full queue drops r.
func (s *SQLiteStore) Record(r model.Result) {
	if s == nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.done {
		return
	}
	select {
	case s.ch <- req{result: r, at: time.Now().UTC()}:
	default:
		log.Warnf("results queue full, dropping %q score:%d", r.Message, r.Score)
	}
}

// Flush waits until everything queued before it is written.
func (s *SQLiteStore) Flush() {
	if s == nil {
		return
	}
	s.mu.RLock()
	if s.done {
		s.mu.RUnlock()
		return
	}
	flushed := make(chan struct{})
	s.ch <- req{flush: flushed}
	s.mu.RUnlock()
	<-flushed
}

func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message, won, score, time_bonus, recorded_at FROM results ORDER BY score DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]Score, 0, limit)
	for rows.Next() {
		var sc Score
		var won int
		var at string
		if err := rows.Scan(&sc.Message, &won, &sc.Score, &sc.TimeBonus, &at); err != nil {
			return nil, err
		}
		sc.Won = won != 0
		sc.RecordedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("recorded_at %q: %w", at, err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil
	}
	s.done = true
	close(s.ch)
	s.mu.Unlock()

	s.wg.Wait()
	return s.db.Close()
}

func (s *SQLiteStore) loop() {
	insert, err := s.db.Prepare(`INSERT INTO results(message,won,score,time_bonus,recorded_at) VALUES(?,?,?,?,?)`)
	if err != nil {
		log.Errorf("results: prepare insert: %v", err)
	}
	defer func() {
		if insert != nil {
			_ = insert.Close()
		}
	}()

	for r := range s.ch {
		if r.flush != nil {
			close(r.flush)
			continue
		}
		if insert == nil {
			continue
		}
		won := 0
		if r.result.Won {
			won = 1
		}
		_, err := insert.Exec(r.result.Message, won, r.result.Score, r.result.TimeBonus, r.at.Format(time.RFC3339Nano))
		if err != nil {
			log.Warnf("results: insert %q: %v", r.result.Message, err)
		}
	}
}
