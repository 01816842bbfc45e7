package feedback

import (
	"database/sql"
	"strings"
)

// PostgresRepository stores reviews in the `feedback` table. A unique index
// on (user_id, product_id) backs the one-review-per-product rule.
type PostgresRepository struct {
	db *sql.DB
}

const feedbackColumns = `feedback_id, user_id, product_id, rating, comment, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanFeedback(row interface{ Scan(...any) error }) (Feedback, error) {
	var f Feedback
	var comment sql.NullString
	if err := row.Scan(&f.FeedbackID, &f.UserID, &f.ProductID, &f.Rating,
		&comment, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return Feedback{}, err
	}
	f.Comment = comment.String
	return f, nil
}

func (r *PostgresRepository) Create(f Feedback) (Feedback, error) {
	created, err := scanFeedback(r.db.QueryRow(`
        INSERT INTO feedback (user_id, product_id, rating, comment, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING `+feedbackColumns,
		f.UserID, f.ProductID, f.Rating, f.Comment, f.CreatedAt, f.UpdatedAt))
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return Feedback{}, ErrAlreadyExists
	}
	return created, err
}

func (r *PostgresRepository) GetByUserAndProduct(userID, productID int) (Feedback, error) {
	f, err := scanFeedback(r.db.QueryRow(
		`SELECT `+feedbackColumns+` FROM feedback WHERE user_id = $1 AND product_id = $2`,
		userID, productID))
	if err == sql.ErrNoRows {
		return Feedback{}, ErrNotFound
	}
	return f, err
}

func (r *PostgresRepository) queryFeedback(query string, args ...any) ([]Feedback, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Feedback, error) {
	return r.queryFeedback(`SELECT `+feedbackColumns+` FROM feedback WHERE product_id = $1 ORDER BY feedback_id DESC`, productID)
}

func (r *PostgresRepository) ListAll() ([]Feedback, error) {
	return r.queryFeedback(`SELECT ` + feedbackColumns + ` FROM feedback ORDER BY feedback_id DESC`)
}

func (r *PostgresRepository) Delete(feedbackID int) error {
	res, err := r.db.Exec(`DELETE FROM feedback WHERE feedback_id = $1`, feedbackID)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
