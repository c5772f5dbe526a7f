package jobs

import (
	"context"
	"database/sql"
	"fmt"

	"cv-backend/internal/shared/storage/db"
)

// SQLRepo stores jobs in the cv table of a postgres, mysql or sqlite database.
type SQLRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func (r *SQLRepo) selectQuery(where string) string {
	query := "SELECT id, company, title, description, " +
		r.Dialect.FormatDate("start_date") + " AS start_date, " +
		r.Dialect.FormatDate("end_date") + " AS end_date FROM cv"
	if where != "" {
		query += " WHERE " + where
	}
	return r.Dialect.Rebind(query + " ORDER BY id")
}

func (r *SQLRepo) List(ctx context.Context) ([]Job, error) {
	return r.query(ctx, r.selectQuery(""))
}

func (r *SQLRepo) Get(ctx context.Context, id string) ([]Job, error) {
	return r.query(ctx, r.selectQuery("id = ?"), id)
}

func (r *SQLRepo) Exists(ctx context.Context, id string) (bool, error) {
	query := r.Dialect.Rebind("SELECT id FROM cv WHERE id = ?")
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return found, nil
}

func (r *SQLRepo) Create(ctx context.Context, job Job) (int64, error) {
	const insert = "INSERT INTO cv (company, title, description, start_date, end_date) VALUES (?, ?, ?, ?, ?)"
	args := []any{job.Company, job.Title, job.Description, job.StartDate, nullableDate(job.EndDate)}

	if r.Dialect.SupportsReturning() {
		var id int64
		if err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(insert+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(insert), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (r *SQLRepo) Update(ctx context.Context, id string, job Job) (int64, error) {
	query := r.Dialect.Rebind("UPDATE cv SET company = ?, title = ?, description = ?, start_date = ?, end_date = ? WHERE id = ?")
	res, err := r.DB.ExecContext(ctx, query,
		job.Company,
		job.Title,
		job.Description,
		job.StartDate,
		nullableDate(job.EndDate),
		id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind("DELETE FROM cv WHERE id = ?"), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLRepo) query(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		var j Job
		var start, end sql.NullString
		if err := rows.Scan(&j.ID, &j.Company, &j.Title, &j.Description, &start, &end); err != nil {
			return nil, err
		}
		j.StartDate = start.String
		if end.Valid {
			v := end.String
			j.EndDate = &v
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableDate(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}
