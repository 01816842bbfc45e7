package user

import (
	"database/sql"
	"strings"
)

// PostgresRepository stores users in the `users` table.
type PostgresRepository struct {
	db *sql.DB
}

const userColumns = `user_id, name, email, password, phone, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	created, err := scanUser(r.db.QueryRow(`
        INSERT INTO users (name, email, password, phone, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING `+userColumns,
		u.Name, u.Email, u.Password, u.Phone, u.CreatedAt, u.UpdatedAt))
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return User{}, ErrEmailExists
	}
	return created, err
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	updated, err := scanUser(r.db.QueryRow(`
        UPDATE users
        SET name=$2, email=$3, password=$4, phone=$5, updated_at=$6
        WHERE user_id=$1
        RETURNING `+userColumns,
		id, u.Name, u.Email, u.Password, u.Phone, u.UpdatedAt))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
