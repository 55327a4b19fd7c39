package postgres

import (
	"context"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"
)

type contactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, sub *domain.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (id, name, email, subject, message, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now())
	          RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		sub.ID, sub.Name, sub.Email, sub.Subject, sub.Message, sub.Status,
	).Scan(&sub.CreatedOn)
}

func (r *contactRepository) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	query := `SELECT id, name, email, subject, message, status, created_on
	          FROM contact_submissions ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.ContactSubmission
	for rows.Next() {
		var s domain.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &s.Status, &s.CreatedOn); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *contactRepository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE contact_submissions SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, domain.ContactStatusRead, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
