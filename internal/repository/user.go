package repository

import (
	"context"
	"fmt"

	"github.com/rifa-digital/rifa-api/internal/domain"
	"github.com/rifa-digital/rifa-api/internal/repository/dao"
)

var (
	ErrUserExists   = dao.ErrUserExists
	ErrUserNotFound = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (dao.User, error)
	ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error)
	FindAll(ctx context.Context, query string, first, skip int) ([]dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	found, err := r.dao.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByIdentifier -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	exists, err := r.dao.ExistsByEmailOrCPF(ctx, email, cpf)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsByEmailOrCPF -> %w", err)
	}

	return exists, nil
}

func (r *UserRepository) FindAll(ctx context.Context, query string, first, skip int) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx, query, first, skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, u := range found {
		users[i] = r.daoToDomain(u)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		Password:  u.Password,
		SiteRole:  u.SiteRole,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		Password:  u.Password,
		SiteRole:  u.SiteRole,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
