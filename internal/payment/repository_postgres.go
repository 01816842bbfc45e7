package payment

import "database/sql"

// PostgresRepository stores payments in the `payments` table. A unique
// index on order_id enforces the one-payment-per-order rule at the schema
// level; settlement runs the payment, order, and cart updates in one
// transaction.
type PostgresRepository struct {
	db *sql.DB
}

const paymentColumns = `payment_id, order_id, user_id, payment_method, amount, payment_status, transaction_id, stripe_session_id, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPayment(row interface{ Scan(...any) error }) (Payment, error) {
	var p Payment
	var txnID, sessionID sql.NullString
	if err := row.Scan(&p.PaymentID, &p.OrderID, &p.UserID, &p.Method, &p.Amount,
		&p.Status, &txnID, &sessionID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Payment{}, err
	}
	p.TransactionID = txnID.String
	p.StripeSessionID = sessionID.String
	return p, nil
}

func (r *PostgresRepository) Create(p Payment) (Payment, error) {
	return scanPayment(r.db.QueryRow(`
        INSERT INTO payments (order_id, user_id, payment_method, amount, payment_status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING `+paymentColumns,
		p.OrderID, p.UserID, string(p.Method), p.Amount, string(p.Status), p.CreatedAt, p.UpdatedAt))
}

func (r *PostgresRepository) GetByID(paymentID int) (Payment, error) {
	p, err := scanPayment(r.db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID))
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) GetByOrderID(orderID int) (Payment, error) {
	p, err := scanPayment(r.db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID))
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Payment, error) {
	rows, err := r.db.Query(`SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY payment_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateMethod(paymentID int, method Method, now string) (Payment, error) {
	p, err := scanPayment(r.db.QueryRow(`
        UPDATE payments SET payment_method=$2, updated_at=$3
        WHERE payment_id=$1
        RETURNING `+paymentColumns, paymentID, string(method), now))
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) SetSessionID(paymentID int, sessionID string, now string) (Payment, error) {
	p, err := scanPayment(r.db.QueryRow(`
        UPDATE payments SET stripe_session_id=$2, updated_at=$3
        WHERE payment_id=$1
        RETURNING `+paymentColumns, paymentID, sessionID, now))
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	return p, err
}

// SettleDigital commits the payment, the order status, and the cart clear
// together; a verify that crashes midway leaves all three untouched.
func (r *PostgresRepository) SettleDigital(paymentID int, transactionID string, now string) (settled Payment, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Payment{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	settled, err = scanPayment(tx.QueryRow(`
        UPDATE payments SET payment_status='Paid', transaction_id=$2, updated_at=$3
        WHERE payment_id=$1
        RETURNING `+paymentColumns, paymentID, transactionID, now))
	if err == sql.ErrNoRows {
		err = ErrNotFound
		return Payment{}, err
	}
	if err != nil {
		return Payment{}, err
	}

	if _, err = tx.Exec(`UPDATE orders SET order_status='Order Placed', updated_at=$2 WHERE order_id=$1`,
		settled.OrderID, now); err != nil {
		return Payment{}, err
	}
	if _, err = tx.Exec(`UPDATE carts SET items='[]'::jsonb, total_cart_amount=0, updated_at=$2 WHERE user_id=$1`,
		settled.UserID, now); err != nil {
		return Payment{}, err
	}

	if err = tx.Commit(); err != nil {
		return Payment{}, err
	}
	return settled, nil
}

func (r *PostgresRepository) MarkFailed(paymentID int, now string) (Payment, error) {
	p, err := scanPayment(r.db.QueryRow(`
        UPDATE payments SET payment_status='Failed', updated_at=$2
        WHERE payment_id=$1
        RETURNING `+paymentColumns, paymentID, now))
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	return p, err
}

// SettleCashOnDelivery places the order and clears the cart in one
// transaction. The payment row is left alone: a COD payment stays Pending
// until the courier collects.
func (r *PostgresRepository) SettleCashOnDelivery(orderID, userID int, now string) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(`UPDATE orders SET order_status='Order Placed', updated_at=$2 WHERE order_id=$1`, orderID, now)
	if err != nil {
		return err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		err = ErrNotFound
		return err
	}

	if _, err = tx.Exec(`UPDATE carts SET items='[]'::jsonb, total_cart_amount=0, updated_at=$2 WHERE user_id=$1`,
		userID, now); err != nil {
		return err
	}

	return tx.Commit()
}
