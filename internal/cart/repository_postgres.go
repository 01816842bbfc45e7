package cart

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository stores carts in the `carts` table, one row per
// customer with the line items as jsonb. Each Save is a single-row write,
// so the items/total pair is always updated atomically.
type PostgresRepository struct {
	db *sql.DB
}

const cartColumns = `cart_id, user_id, items, total_cart_amount, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCart(row interface{ Scan(...any) error }) (Cart, error) {
	var c Cart
	var itemsJSON []byte
	if err := row.Scan(&c.CartID, &c.UserID, &itemsJSON, &c.TotalCartAmount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Cart{}, err
	}
	if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
		return Cart{}, err
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}

func (r *PostgresRepository) Get(userID int) (Cart, error) {
	c, err := scanCart(r.db.QueryRow(`SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID))
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) GetOrCreate(userID int, now string) (Cart, error) {
	c, err := r.Get(userID)
	if err == nil {
		return c, nil
	}
	if err != ErrNotFound {
		return Cart{}, err
	}

	// ON CONFLICT covers two first-add requests racing on the unique
	// user_id constraint.
	c, err = scanCart(r.db.QueryRow(`
        INSERT INTO carts (user_id, items, total_cart_amount, created_at, updated_at)
        VALUES ($1, '[]', 0, $2, $2)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING `+cartColumns, userID, now))
	return c, err
}

func (r *PostgresRepository) Save(c Cart) (Cart, error) {
	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return Cart{}, err
	}

	saved, err := scanCart(r.db.QueryRow(`
        UPDATE carts
        SET items=$2, total_cart_amount=$3, updated_at=$4
        WHERE user_id=$1
        RETURNING `+cartColumns,
		c.UserID, itemsJSON, c.TotalCartAmount, c.UpdatedAt))
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	return saved, err
}

func (r *PostgresRepository) Clear(userID int, now string) (Cart, error) {
	c, err := scanCart(r.db.QueryRow(`
        UPDATE carts
        SET items='[]', total_cart_amount=0, updated_at=$2
        WHERE user_id=$1
        RETURNING `+cartColumns, userID, now))
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	return c, err
}
