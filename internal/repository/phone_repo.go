package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bci-users/internal/domain"
)

// PhoneRepository define el contrato de persistencia para telefonos.
type PhoneRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.Phone, error)
	SaveAll(ctx context.Context, phones []domain.Phone) ([]domain.Phone, error)
}

// PgPhoneRepository implementa PhoneRepository usando pgxpool.
type PgPhoneRepository struct {
	pool *pgxpool.Pool
}

func NewPgPhoneRepository(pool *pgxpool.Pool) *PgPhoneRepository {
	return &PgPhoneRepository{pool: pool}
}

func (r *PgPhoneRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Phone, error) {
	const query = `
		SELECT id, number, city_code, country_code, user_id
		FROM phones
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("find phones: %w", err)
	}
	defer rows.Close()

	phones := make([]domain.Phone, 0)
	for rows.Next() {
		var p domain.Phone
		if err := rows.Scan(&p.ID, &p.Number, &p.CityCode, &p.CountryCode, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones = append(phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phones: %w", err)
	}
	return phones, nil
}

// SaveAll inserta todos los telefonos en un solo batch y devuelve los ids asignados.
func (r *PgPhoneRepository) SaveAll(ctx context.Context, phones []domain.Phone) ([]domain.Phone, error) {
	if len(phones) == 0 {
		return []domain.Phone{}, nil
	}
	const query = `
		INSERT INTO phones (number, city_code, country_code, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	batch := &pgx.Batch{}
	for _, p := range phones {
		batch.Queue(query, p.Number, p.CityCode, p.CountryCode, p.UserID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	saved := make([]domain.Phone, 0, len(phones))
	for _, p := range phones {
		if err := results.QueryRow().Scan(&p.ID); err != nil {
			return nil, fmt.Errorf("insert phone: %w", err)
		}
		saved = append(saved, p)
	}
	return saved, nil
}
