/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// language=SQL
// dialect=SQLite
const insertSnapshotSQL = `INSERT INTO snapshots(doc_id, ts, label, blob) VALUES (?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestSnapshotSQL = `SELECT id, ts, label, blob FROM snapshots WHERE doc_id = ? ORDER BY ts DESC, id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listSnapshotsSQL = `SELECT id, ts, label, blob FROM snapshots WHERE doc_id = ? ORDER BY ts DESC, id DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneOldSnapshotsSQL = `DELETE FROM snapshots WHERE doc_id = ? AND id NOT IN (
	SELECT id FROM snapshots WHERE doc_id = ? ORDER BY ts DESC, id DESC LIMIT ?
)`

// language=SQL
// dialect=SQLite
const listDocumentsSQL = `SELECT doc_id, COUNT(*), MAX(ts) FROM snapshots GROUP BY doc_id ORDER BY MAX(ts) DESC`

// tsLayout is fixed width so that ORDER BY ts matches time order.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

var ErrNoDocID = errors.New("storage: document id is required")

// Entry is one archived snapshot.
type Entry struct {
	ID    int64
	DocID string
	Label string
	TS    time.Time
	Blob  []byte
}

// DocumentSummary describes the snapshots held for one document.
type DocumentSummary struct {
	DocID  string
	Count  int
	Latest time.Time
}

// Save persists a scene snapshot blob for docID and returns the new entry id.
func (a *Archive) Save(ctx context.Context, docID, label string, blob []byte, ts time.Time) (int64, error) {
	db, err := a.handle()
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(docID) == "" {
		return 0, ErrNoDocID
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := db.ExecContext(ctx, insertSnapshotSQL, docID, ts.UTC().Format(tsLayout), label, blob)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err == nil {
		a.l.Debug("snapshot archived", slog.String("doc", docID), slog.Int64("id", id), slog.Int("bytes", len(blob)))
	}
	return id, err
}

// Latest returns the newest snapshot for docID, or nil when there is none.
func (a *Archive) Latest(ctx context.Context, docID string) (*Entry, error) {
	db, err := a.handle()
	if err != nil {
		return nil, err
	}
	e, err := scanEntry(db.QueryRowContext(ctx, selectLatestSnapshotSQL, docID), docID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

type scanner interface{ Scan(dest ...any) error }

func scanEntry(r scanner, docID string) (*Entry, error) {
	var tsStr string
	e := &Entry{DocID: docID}
	if err := r.Scan(&e.ID, &tsStr, &e.Label, &e.Blob); err != nil {
		return nil, err
	}
	// return the blob even if ts parse fails
	e.TS, _ = time.Parse(tsLayout, tsStr)
	return e, nil
}

// List returns up to limit most recent snapshots for docID, newest first.
func (a *Archive) List(ctx context.Context, docID string, limit int) ([]Entry, error) {
	db, err := a.handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, listSnapshotsSQL, docID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows, docID)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Documents lists every archived document with its snapshot count.
func (a *Archive) Documents(ctx context.Context) ([]DocumentSummary, error) {
	db, err := a.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, listDocumentsSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []DocumentSummary
	for rows.Next() {
		var d DocumentSummary
		var tsStr string
		if err := rows.Scan(&d.DocID, &d.Count, &tsStr); err != nil {
			return nil, err
		}
		d.Latest, _ = time.Parse(tsLayout, tsStr)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Prune keeps at most keepLast snapshots for docID and deletes older ones.
func (a *Archive) Prune(ctx context.Context, docID string, keepLast int) (int64, error) {
	db, err := a.handle()
	if err != nil {
		return 0, err
	}
	if keepLast <= 0 {
		return 0, nil
	}
	res, err := db.ExecContext(ctx, pruneOldSnapshotsSQL, docID, docID, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
