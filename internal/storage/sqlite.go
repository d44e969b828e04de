// Package storage - SQLite хранилище состояния ближнего боя
// и отчетов о модах без анимаций.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"advanced-melee/internal/domain"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Store - обертка над sql.DB
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// MissingModReport - агрегированный отчет по одному моду
type MissingModReport struct {
	ModID        string
	ModName      string
	WeaponDefs   []string
	Count        int
	FirstSeen    time.Time
	LastReported time.Time
}

// Open открывает (или создает) базу по пути path.
// ":memory:" - база в памяти для тестов.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Один писатель: SQLite не любит конкурентные транзакции
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

	logger.Component("storage").WithField("path", path).Info("Database opened")
	return &Store{db: db, now: time.Now}, nil
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
		`CREATE TABLE IF NOT EXISTS melee_data (
			actor_id TEXT PRIMARY KEY,
			auto_execute INTEGER NOT NULL,
			auto_grapple INTEGER NOT NULL,
			time_since_executed INTEGER NOT NULL,
			time_since_grappled INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS missing_mod_reports (
			mod_id TEXT PRIMARY KEY,
			mod_name TEXT NOT NULL,
			weapon_defs TEXT NOT NULL,
			report_count INTEGER NOT NULL,
			first_seen INTEGER NOT NULL,
			last_reported INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveMeleeData заменяет сохраненные данные списком list.
// Вызывающий передает только то, что стоит сохранять.
func (s *Store) SaveMeleeData(ctx context.Context, list []*domain.MeleeData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM melee_data`); err != nil {
		return fmt.Errorf("clear melee data: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO melee_data
		(actor_id, auto_execute, auto_grapple, time_since_executed, time_since_grappled)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range list {
		if _, err := stmt.ExecContext(ctx, d.ActorID, int(d.AutoExecute), int(d.AutoGrapple),
			d.TimeSinceExecuted, d.TimeSinceGrappled); err != nil {
			return fmt.Errorf("save melee data %s: %w", d.ActorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Component("storage").WithField("count", len(list)).Info("Melee data saved")
	return nil
}

// LoadMeleeData читает все сохраненные записи
func (s *Store) LoadMeleeData(ctx context.Context) ([]*domain.MeleeData, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT actor_id, auto_execute, auto_grapple,
		time_since_executed, time_since_grappled FROM melee_data ORDER BY actor_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.MeleeData
	for rows.Next() {
		var (
			d                   domain.MeleeData
			autoExec, autoGrabs int
		)
		if err := rows.Scan(&d.ActorID, &autoExec, &autoGrabs, &d.TimeSinceExecuted, &d.TimeSinceGrappled); err != nil {
			return nil, err
		}
		d.AutoExecute = domain.AutoOption(autoExec)
		d.AutoGrapple = domain.AutoOption(autoGrabs)
		out = append(out, &d)
	}
	return out, rows.Err()
}

// SaveMissingMods сохраняет отчеты: повторный отчет по моду увеличивает счетчик
// и дополняет список оружия.
func (s *Store) SaveMissingMods(ctx context.Context, reports []api.MissingModRequest) error {
	if len(reports) == 0 {
		return nil
	}
	now := s.now().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range reports {
		var existing string
		err := tx.QueryRowContext(ctx, `SELECT weapon_defs FROM missing_mod_reports WHERE mod_id = ?`, r.ModID).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			var defs string
			if defs, err = encodeDefs(mergeDefs(nil, r.WeaponDefs)); err == nil {
				_, err = tx.ExecContext(ctx, `INSERT INTO missing_mod_reports
					(mod_id, mod_name, weapon_defs, report_count, first_seen, last_reported)
					VALUES (?, ?, ?, 1, ?, ?)`,
					r.ModID, r.ModName, defs, now, now)
			}
		case err == nil:
			var old []string
			if old, err = decodeDefs(existing); err != nil {
				break
			}
			var defs string
			if defs, err = encodeDefs(mergeDefs(old, r.WeaponDefs)); err == nil {
				_, err = tx.ExecContext(ctx, `UPDATE missing_mod_reports
					SET mod_name = ?, weapon_defs = ?, report_count = report_count + 1, last_reported = ?
					WHERE mod_id = ?`,
					r.ModName, defs, now, r.ModID)
			}
		}
		if err != nil {
			return fmt.Errorf("save report %s: %w", r.ModID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Component("storage").WithFields(logrus.Fields{"count": len(reports)}).Info("Missing mod reports saved")
	return nil
}

// MissingMods - все отчеты, самые частые первыми
func (s *Store) MissingMods(ctx context.Context) ([]MissingModReport, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT mod_id, mod_name, weapon_defs, report_count, first_seen, last_reported
		FROM missing_mod_reports ORDER BY report_count DESC, mod_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MissingModReport
	for rows.Next() {
		var (
			r           MissingModReport
			defs        string
			first, last int64
		)
		if err := rows.Scan(&r.ModID, &r.ModName, &defs, &r.Count, &first, &last); err != nil {
			return nil, err
		}
		if r.WeaponDefs, err = decodeDefs(defs); err != nil {
			return nil, fmt.Errorf("report %s: %w", r.ModID, err)
		}
		r.FirstSeen = time.UnixMilli(first)
		r.LastReported = time.UnixMilli(last)
		out = append(out, r)
	}
	return out, rows.Err()
}

// mergeDefs объединяет списки без повторов, сохраняя порядок
func mergeDefs(old, add []string) []string {
	seen := make(map[string]bool, len(old)+len(add))
	out := make([]string, 0, len(old)+len(add))
	for _, list := range [][]string{old, add} {
		for _, d := range list {
			d = strings.TrimSpace(d)
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// Список оружия хранится JSON массивом: в defName может быть любой символ
func encodeDefs(defs []string) (string, error) {
	if defs == nil {
		defs = []string{}
	}
	raw, err := json.Marshal(defs)
	if err != nil {
		return "", fmt.Errorf("encode weapon defs: %w", err)
	}
	return string(raw), nil
}

func decodeDefs(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var defs []string
	if err := json.Unmarshal([]byte(s), &defs); err != nil {
		return nil, fmt.Errorf("decode weapon defs: %w", err)
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return defs, nil
}
