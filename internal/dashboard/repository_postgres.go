package dashboard

import "database/sql"

// Repository computes the admin overview. The Postgres implementation
// pushes all aggregation into SQL rather than loading rows into memory.
type Repository interface {
	Stats() (Stats, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Stats() (Stats, error) {
	stats := Stats{
		OrdersByStatus: make(map[string]int),
		TopProducts:    []TopProduct{},
	}

	err := r.db.QueryRow(`
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM products),
            (SELECT COUNT(*) FROM orders),
            (SELECT COUNT(*) FROM payments),
            (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'Paid')`).
		Scan(&stats.TotalUsers, &stats.TotalProducts, &stats.TotalOrders, &stats.TotalPayments, &stats.TotalRevenue)
	if err != nil {
		return Stats{}, err
	}

	rows, err := r.db.Query(`SELECT order_status, COUNT(*) FROM orders GROUP BY order_status`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	top, err := r.db.Query(`
        SELECT (item->>'productId')::int AS product_id,
               COALESCE(p.name, ''),
               SUM((item->>'quantity')::int) AS total_quantity
        FROM orders, jsonb_array_elements(order_items) AS item
        LEFT JOIN products p ON p.product_id = (item->>'productId')::int
        GROUP BY 1, 2
        ORDER BY total_quantity DESC
        LIMIT 5`)
	if err != nil {
		return Stats{}, err
	}
	defer top.Close()
	for top.Next() {
		var tp TopProduct
		if err := top.Scan(&tp.ProductID, &tp.Name, &tp.TotalQuantity); err != nil {
			return Stats{}, err
		}
		stats.TopProducts = append(stats.TopProducts, tp)
	}
	return stats, top.Err()
}
