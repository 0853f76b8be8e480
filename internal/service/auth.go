package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rifa-digital/rifa-api/internal/domain"
	"github.com/rifa-digital/rifa-api/internal/repository"
)

var (
	ErrUserExists = repository.ErrUserExists

	// ErrLoginFailed is deliberately generic: the caller cannot tell
	// whether the identifier or the password was wrong.
	ErrLoginFailed = errors.New("Desculpe. Não foi possível logar.")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.User, error)
	ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup creates a user after checking that neither the email nor the cpf
// is already registered. The database carries unique indexes on both
// columns, so a duplicate racing past this check still fails with
// ErrUserExists on insert.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	taken, err := s.repo.ExistsByEmailOrCPF(ctx, user.Email, user.CPF)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.ExistsByEmailOrCPF -> %w", err)
	}
	if taken {
		return domain.User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	if user.SiteRole == "" {
		user.SiteRole = domain.SiteRoleUser
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Login locates a user by email or cpf and compares the password against
// the stored bcrypt digest. Any mismatch or absent user yields the same
// ErrLoginFailed.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrLoginFailed
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByIdentifier -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrLoginFailed
	}

	return user, nil
}
