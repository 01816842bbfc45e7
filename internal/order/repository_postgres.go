package order

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository stores orders in the `orders` table with the item
// snapshot and delivery address as jsonb.
type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `order_id, user_id, order_items, total_order_amount, charges, order_status, delivery_address, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var ord Order
	var itemsJSON, addrJSON []byte
	if err := row.Scan(&ord.OrderID, &ord.UserID, &itemsJSON, &ord.TotalOrderAmount,
		&ord.Charges, &ord.Status, &addrJSON, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(addrJSON, &ord.DeliveryAddress); err != nil {
		return Order{}, err
	}
	if ord.Items == nil {
		ord.Items = []Item{}
	}
	return ord, nil
}

// Create inserts the order and its companion Pending payment in a single
// transaction so a crash cannot leave an order without a payment record.
func (r *PostgresRepository) Create(ord Order) (created Order, err error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	addrJSON, err := json.Marshal(ord.DeliveryAddress)
	if err != nil {
		return Order{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	created, err = scanOrder(tx.QueryRow(`
        INSERT INTO orders (user_id, order_items, total_order_amount, charges, order_status, delivery_address, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING `+orderColumns,
		ord.UserID, itemsJSON, ord.TotalOrderAmount, ord.Charges, ord.Status, addrJSON, ord.CreatedAt, ord.UpdatedAt))
	if err != nil {
		return Order{}, err
	}

	_, err = tx.Exec(`
        INSERT INTO payments (order_id, user_id, payment_method, amount, payment_status, created_at, updated_at)
        VALUES ($1,$2,'Digital',$3,'Pending',$4,$4)`,
		created.OrderID, created.UserID, created.TotalOrderAmount, created.CreatedAt)
	if err != nil {
		return Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return Order{}, err
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(orderID int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) queryOrders(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.queryOrders(`SELECT ` + orderColumns + ` FROM orders ORDER BY order_id DESC`)
}

func (r *PostgresRepository) ListByStatus(status Status) ([]Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE order_status = $1 ORDER BY order_id DESC`, string(status))
}

func (r *PostgresRepository) UpdateStatus(orderID int, status Status, now string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`
        UPDATE orders SET order_status=$2, updated_at=$3
        WHERE order_id=$1
        RETURNING `+orderColumns, orderID, string(status), now))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) UpdateAddress(orderID int, addr DeliveryAddress, now string) (Order, error) {
	addrJSON, err := json.Marshal(addr)
	if err != nil {
		return Order{}, err
	}
	ord, err := scanOrder(r.db.QueryRow(`
        UPDATE orders SET delivery_address=$2, updated_at=$3
        WHERE order_id=$1
        RETURNING `+orderColumns, orderID, addrJSON, now))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) Delete(orderID int) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
