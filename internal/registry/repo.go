package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umajibakery/reservations/internal/catalog"
	"github.com/umajibakery/reservations/internal/reservation"
)

var (
	ErrNotFound = errors.New("reservation not found")
	// ErrBadTransition rejects status changes outside the lifecycle
	// table (pending→confirmed|cancelled, confirmed→completed|cancelled).
	ErrBadTransition = errors.New("invalid status transition")
)

// Repo is the admin reservation registry. It is populated with sample
// records and mutated only through the back office; public submissions
// do not land here.
type Repo struct{ DB *pgxpool.Pool }

// Filter narrows List. Zero values pass everything through.
type Filter struct {
	Status  reservation.Status
	Date    string // pickup date, YYYY-MM-DD
	Channel string // "today" or "advance"
}

// EnsureSchema creates the registry tables when missing.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reservations (
			id           SERIAL PRIMARY KEY,
			type         TEXT NOT NULL,
			pickup_date  TEXT NOT NULL,
			pickup_time  TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			phone        TEXT NOT NULL,
			email        TEXT NOT NULL,
			total_price  INT  NOT NULL,
			status       TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS reservation_items (
			reservation_id INT NOT NULL REFERENCES reservations(id),
			position       INT NOT NULL,
			name           TEXT NOT NULL,
			quantity       INT NOT NULL,
			price          INT NOT NULL,
			PRIMARY KEY (reservation_id, position)
		);
	`)
	return err
}

// List returns matching records with their items, newest first.
func (r *Repo) List(ctx context.Context, f Filter) ([]reservation.Record, error) {
	q := `SELECT id, type, pickup_date, pickup_time, customer_name, phone, email,
	             total_price, status, created_at
	      FROM reservations WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		q += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		q += fmt.Sprintf(" AND pickup_date=$%d", len(args))
	}
	if f.Channel != "" {
		args = append(args, f.Channel)
		q += fmt.Sprintf(" AND type=$%d", len(args))
	}
	q += " ORDER BY id DESC"

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []reservation.Record
	index := map[int]int{}
	for rows.Next() {
		var rec reservation.Record
		var channel, status string
		if err := rows.Scan(&rec.ID, &channel, &rec.Date, &rec.Time,
			&rec.Customer.Name, &rec.Customer.Phone, &rec.Customer.Email,
			&rec.TotalPrice, &status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Channel = catalog.Channel(channel)
		rec.Status = reservation.Status(status)
		index[rec.ID] = len(recs)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return recs, nil
	}

	ids := make([]any, 0, len(recs))
	params := ""
	for i, rec := range recs {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+1)
		ids = append(ids, rec.ID)
	}
	itemRows, err := r.DB.Query(ctx, `
		SELECT reservation_id, name, quantity, price
		FROM reservation_items
		WHERE reservation_id IN (`+params+`)
		ORDER BY reservation_id, position`, ids...)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var rid int
		var it reservation.Item
		if err := itemRows.Scan(&rid, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		i := index[rid]
		recs[i].Items = append(recs[i].Items, it)
	}
	return recs, itemRows.Err()
}

// Get fetches one record with its items.
func (r *Repo) Get(ctx context.Context, id int) (reservation.Record, error) {
	var rec reservation.Record
	var channel, status string
	err := r.DB.QueryRow(ctx, `
		SELECT id, type, pickup_date, pickup_time, customer_name, phone, email,
		       total_price, status, created_at
		FROM reservations WHERE id=$1`, id).
		Scan(&rec.ID, &channel, &rec.Date, &rec.Time,
			&rec.Customer.Name, &rec.Customer.Phone, &rec.Customer.Email,
			&rec.TotalPrice, &status, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	rec.Channel = catalog.Channel(channel)
	rec.Status = reservation.Status(status)

	rows, err := r.DB.Query(ctx, `
		SELECT name, quantity, price FROM reservation_items
		WHERE reservation_id=$1 ORDER BY position`, id)
	if err != nil {
		return rec, err
	}
	defer rows.Close()
	for rows.Next() {
		var it reservation.Item
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Price); err != nil {
			return rec, err
		}
		rec.Items = append(rec.Items, it)
	}
	return rec, rows.Err()
}

// SetStatus moves a record along the lifecycle, rejecting transitions
// the table does not allow. The row is locked so concurrent admin
// actions cannot race past the check.
func (r *Repo) SetStatus(ctx context.Context, id int, next reservation.Status) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM reservations WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !reservation.CanTransition(reservation.Status(current), next) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, current, next)
	}
	if _, err := tx.Exec(ctx, `UPDATE reservations SET status=$2 WHERE id=$1`, id, string(next)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Insert stores a record with its items and returns the assigned id.
func (r *Repo) Insert(ctx context.Context, rec reservation.Record) (int, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO reservations(type, pickup_date, pickup_time, customer_name,
		                         phone, email, total_price, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		string(rec.Channel), rec.Date, rec.Time, rec.Customer.Name,
		rec.Customer.Phone, rec.Customer.Email, rec.TotalPrice,
		string(rec.Status), rec.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	for i, it := range rec.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO reservation_items(reservation_id, position, name, quantity, price)
			VALUES ($1,$2,$3,$4,$5)`,
			id, i, it.Name, it.Quantity, it.Price); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// SeedSamples inserts the demo records once, when the table is empty.
func (r *Repo) SeedSamples(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, rec := range SampleRecords() {
		if _, err := r.Insert(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
