package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const cols = `id, name, description, category, price_cents, available_quantity,
	minimum_order_quantity, images, demo_video, payment_options, show_on_home,
	created_by, created_at, updated_at`

func scan(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents,
		&p.AvailableQuantity, &p.MinimumOrderQuantity, &p.Images, &p.DemoVideo,
		&p.PaymentOptions, &p.ShowOnHome, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collect(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	var out []Product
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+cols+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) ListHome(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+cols+` FROM products WHERE show_on_home ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) ListByCreator(ctx context.Context, userID string) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+cols+` FROM products WHERE created_by=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	p, err := scan(r.DB.QueryRow(ctx, `SELECT `+cols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, in Input, createdBy string) (Product, error) {
	row := r.DB.QueryRow(ctx, `
		INSERT INTO products (id, name, description, category, price_cents,
			available_quantity, minimum_order_quantity, images, demo_video,
			payment_options, show_on_home, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING `+cols,
		uuid.NewString(), in.Name, in.Description, in.Category, in.PriceCents,
		in.AvailableQuantity, in.MinimumOrderQuantity, in.Images, in.DemoVideo,
		in.PaymentOptions, in.ShowOnHome, createdBy)
	return scan(row)
}

func (r *Repo) Update(ctx context.Context, id string, in Input) (Product, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE products SET name=$2, description=$3, category=$4, price_cents=$5,
			available_quantity=$6, minimum_order_quantity=$7, images=$8,
			demo_video=$9, payment_options=$10, show_on_home=$11, updated_at=now()
		WHERE id=$1
		RETURNING `+cols,
		id, in.Name, in.Description, in.Category, in.PriceCents,
		in.AvailableQuantity, in.MinimumOrderQuantity, in.Images, in.DemoVideo,
		in.PaymentOptions, in.ShowOnHome)
	p, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleHome flips the featured flag and returns the new value.
func (r *Repo) ToggleHome(ctx context.Context, id string) (bool, error) {
	var v bool
	err := r.DB.QueryRow(ctx, `
		UPDATE products SET show_on_home = NOT show_on_home, updated_at=now()
		WHERE id=$1 RETURNING show_on_home`, id).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	return v, err
}
