package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mvalencia464/onboard/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Save upserts a record keyed by its id. A record with an id updates in
// place; when the update matches no row (the row was deleted underneath, or
// the id came from an import) it falls back to a plain insert. The returned
// copy carries the assigned id and status; the payload column is written
// after both are set so the stored document always agrees with the columns.
func (r *Repo) Save(ctx context.Context, rec domain.BusinessRecord, status string) (domain.BusinessRecord, error) {
	rec.Status = status

	if rec.ID != 0 {
		payload, err := json.Marshal(rec)
		if err != nil {
			return domain.BusinessRecord{}, fmt.Errorf("serialize record: %w", err)
		}
		res, err := r.db.ExecContext(ctx, updateBusinessSQL,
			nullStr(rec.GooglePlaceID), rec.BusinessName, rec.Status, payload, rec.ID)
		if err != nil {
			return domain.BusinessRecord{}, err
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return rec, nil
		}
	}

	rec.ID = 0
	payload, err := json.Marshal(rec)
	if err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("serialize record: %w", err)
	}
	res, err := r.db.ExecContext(ctx, insertBusinessSQL,
		nullStr(rec.GooglePlaceID), rec.BusinessName, rec.Status, payload)
	if err != nil {
		return domain.BusinessRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.BusinessRecord{}, err
	}
	rec.ID = id

	// Rewrite the document so the embedded id matches the assigned row id.
	payload, err = json.Marshal(rec)
	if err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("serialize record: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, updateBusinessSQL,
		nullStr(rec.GooglePlaceID), rec.BusinessName, rec.Status, payload, rec.ID); err != nil {
		return domain.BusinessRecord{}, err
	}
	return rec, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.RecordSummary, error) {
	rows, err := r.db.QueryContext(ctx, listBusinessesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RecordSummary{}
	for rows.Next() {
		var s domain.RecordSummary
		var placeID sql.NullString
		if err := rows.Scan(&s.ID, &s.BusinessName, &placeID, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		if placeID.Valid {
			s.PlaceID = placeID.String
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (domain.BusinessRecord, error) {
	row := r.db.QueryRowContext(ctx, getBusinessSQL, id)

	var (
		rowID   int64
		status  string
		payload []byte
	)
	if err := row.Scan(&rowID, &status, &payload); err != nil {
		if err == sql.ErrNoRows {
			return domain.BusinessRecord{}, domain.ErrNotFound
		}
		return domain.BusinessRecord{}, err
	}

	var rec domain.BusinessRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("parse stored record %d: %w", id, err)
	}
	// Columns win over whatever the document claims.
	rec.ID = rowID
	rec.Status = status
	return rec, nil
}
