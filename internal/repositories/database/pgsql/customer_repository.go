package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
	"github.com/hamisi/atm-backend/internal/models"
)

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a repository for customer data.
func NewCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{pool: pool}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		CardNumber: m.CardNumber,
		PINHash:    m.PINHash,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *PgxCustomerRepository) findCustomer(ctx context.Context, where string, arg any) (*domain.Customer, error) {
	var m models.Customer
	err := r.pool.QueryRow(ctx,
		`SELECT customer_id, name, card_number, pin_hash, created_at FROM customers WHERE `+where+` = $1;`,
		arg,
	).Scan(&m.CustomerID, &m.Name, &m.CardNumber, &m.PINHash, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	c := toDomainCustomer(m)
	return &c, nil
}

// FindCustomerByID retrieves a customer by internal ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return r.findCustomer(ctx, "customer_id", customerID)
}

// FindCustomerByCardNumber retrieves a customer by card number.
func (r *PgxCustomerRepository) FindCustomerByCardNumber(ctx context.Context, cardNumber string) (*domain.Customer, error) {
	return r.findCustomer(ctx, "card_number", cardNumber)
}
