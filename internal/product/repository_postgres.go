package product

import (
	"database/sql"

	"github.com/lib/pq"
)

// PostgresRepository stores products in the `products` table.
type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `product_id, name, description, price, category, is_available, stock, image, created_at, updated_at`

const (
	insertProductQuery = `
        INSERT INTO products (name, description, price, category, is_available, stock, image, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING ` + productColumns
	updateProductQuery = `
        UPDATE products
        SET name=$2, description=$3, price=$4, category=$5, is_available=$6, stock=$7, image=$8, updated_at=$9
        WHERE product_id=$1
        RETURNING ` + productColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.IsAvailable, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) queryProducts(query string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List() ([]Product, error) {
	return r.queryProducts(`SELECT ` + productColumns + ` FROM products ORDER BY product_id`)
}

func (r *PostgresRepository) ListByCategory(category string) ([]Product, error) {
	return r.queryProducts(`SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY product_id`, category)
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return r.queryProducts(`SELECT `+productColumns+` FROM products WHERE product_id = ANY($1::int[]) ORDER BY product_id`, pq.Array(ids))
}

func (r *PostgresRepository) Search(query string) ([]Product, error) {
	pattern := "%" + query + "%"
	return r.queryProducts(
		`SELECT `+productColumns+` FROM products WHERE name ILIKE $1 OR description ILIKE $1 ORDER BY product_id`,
		pattern)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	return scanProduct(r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.Price, p.Category, p.IsAvailable, p.Stock, p.Image, p.CreatedAt, p.UpdatedAt))
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	updated, err := scanProduct(r.db.QueryRow(updateProductQuery,
		id, p.Name, p.Description, p.Price, p.Category, p.IsAvailable, p.Stock, p.Image, p.UpdatedAt))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) SetAvailability(id int, available bool) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(
		`UPDATE products SET is_available=$2 WHERE product_id=$1 RETURNING `+productColumns, id, available))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) SetStock(id int, stock int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(
		`UPDATE products SET stock=$2 WHERE product_id=$1 RETURNING `+productColumns, id, stock))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
