package repositories

import (
	"database/sql"

	intconfig "travelog/internal/config"
	intdb "travelog/internal/db"
	"travelog/internal/domain"
	"travelog/internal/domain/models"
)

type ExpenseRepository struct {
	DB *sql.DB
}

func (r ExpenseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ExpenseRepository) ListByTrip(tripID int64) ([]models.Expense, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, title, amount, currency, payer_id, COALESCE(category,''), COALESCE(spent_at,'')
		FROM expenses
		WHERE trip_id = ?
		ORDER BY spent_at ASC, id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.TripID, &e.Title, &e.Amount, &e.Currency, &e.PayerID, &e.Category, &e.SpentAt); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	for i := range out {
		parts, err := r.participants(out[i].ID)
		if err != nil {
			return out, err
		}
		out[i].Participants = parts
	}
	return out, nil
}

func (r ExpenseRepository) GetByID(id int64) (models.Expense, error) {
	var e models.Expense
	err := r.db().QueryRow(`
		SELECT id, trip_id, title, amount, currency, payer_id, COALESCE(category,''), COALESCE(spent_at,'')
		FROM expenses
		WHERE id = ?
	`, id).Scan(&e.ID, &e.TripID, &e.Title, &e.Amount, &e.Currency, &e.PayerID, &e.Category, &e.SpentAt)
	if err == sql.ErrNoRows {
		return e, domain.NotFoundError{Resource: "expense"}
	}
	if err != nil {
		return e, err
	}
	e.Participants, err = r.participants(e.ID)
	return e, err
}

func (r ExpenseRepository) participants(expenseID int64) ([]int64, error) {
	rows, err := r.db().Query(`
		SELECT user_id FROM expense_participants WHERE expense_id = ? ORDER BY user_id ASC
	`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return out, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// Create stores the expense and its participant rows in one tx.
func (r ExpenseRepository) Create(e models.Expense) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO expenses (trip_id, title, amount, currency, payer_id, category, spent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.TripID, e.Title, e.Amount, e.Currency, e.PayerID, e.Category, intdb.NullIfEmpty(e.SpentAt))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, uid := range e.Participants {
		if _, err := tx.Exec(`
			INSERT INTO expense_participants (expense_id, user_id) VALUES (?, ?)
		`, id, uid); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

// Update rewrites the expense and replaces its participant set.
func (r ExpenseRepository) Update(e models.Expense) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE expenses SET title=?, amount=?, currency=?, payer_id=?, category=?, spent_at=?
		WHERE id=? AND trip_id=?
	`, e.Title, e.Amount, e.Currency, e.PayerID, e.Category, intdb.NullIfEmpty(e.SpentAt), e.ID, e.TripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "expense"}
	}

	if _, err := tx.Exec(`DELETE FROM expense_participants WHERE expense_id=?`, e.ID); err != nil {
		return err
	}
	for _, uid := range e.Participants {
		if _, err := tx.Exec(`
			INSERT INTO expense_participants (expense_id, user_id) VALUES (?, ?)
		`, e.ID, uid); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r ExpenseRepository) Delete(tripID, id int64) error {
	res, err := r.db().Exec(`DELETE FROM expenses WHERE id=? AND trip_id=?`, id, tripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "expense"}
	}
	return nil
}
