package address

import "database/sql"

// PostgresRepository stores addresses in a dedicated table with a foreign
// key to users.
type PostgresRepository struct {
	db *sql.DB
}

const (
	addressColumns     = `address_id, user_id, address_type, details, created_at, updated_at`
	insertAddressQuery = `
        INSERT INTO address (user_id, address_type, details, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING ` + addressColumns
	updateAddressQuery = `
        UPDATE address
        SET address_type=$3, details=$4, updated_at=$5
        WHERE user_id=$1 AND address_id=$2
        RETURNING ` + addressColumns
	deleteAddressQuery = `
        DELETE FROM address WHERE user_id=$1 AND address_id=$2
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM address WHERE user_id = $1 ORDER BY address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.AddressID, &a.UserID, &a.Type, &a.Details, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Add(a Address) (Address, error) {
	err := r.db.QueryRow(insertAddressQuery, a.UserID, a.Type, a.Details, a.CreatedAt, a.UpdatedAt).
		Scan(&a.AddressID, &a.UserID, &a.Type, &a.Details, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	err := r.db.QueryRow(updateAddressQuery, userID, addressID, a.Type, a.Details, a.UpdatedAt).
		Scan(&a.AddressID, &a.UserID, &a.Type, &a.Details, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	res, err := r.db.Exec(deleteAddressQuery, userID, addressID)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
