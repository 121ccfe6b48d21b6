package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ed9408/minerva-api/internal/models"
	"github.com/ed9408/minerva-api/internal/repo"
	"github.com/ed9408/minerva-api/internal/utils"
)

type UserStore interface {
	Create(ctx context.Context, name, email, role, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, update repo.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UserService struct {
	users UserStore
}

type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if strings.TrimSpace(password) == "" {
		return nil, utils.ErrDomainValidation("password cannot be empty")
	}

	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, utils.ErrDomainValidation("role must be admin or user")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not secure password", nil)
	}

	user, err := s.users.Create(ctx, name, email, role, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, utils.ErrDomainValidation("email already registered")
		}
		return nil, utils.ErrDomainValidation("could not create user")
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, utils.ErrDomainValidation("could not list users")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound("user not found")
		}
		return nil, utils.ErrDomainValidation("could not load user")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*models.User, error) {
	update := repo.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
	}

	if input.Password != nil {
		if strings.TrimSpace(*input.Password) == "" {
			return nil, utils.ErrDomainValidation("password cannot be empty")
		}
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not secure password", nil)
		}
		update.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound("user not found")
		}
		if isUniqueViolation(err) {
			return nil, utils.ErrDomainValidation("email already registered")
		}
		return nil, utils.ErrDomainValidation("could not update user")
	}

	return user, nil
}

// Delete removes the user; owned tasks go with it via the FK cascade.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return utils.ErrDomainValidation("could not delete user")
	}
	if !deleted {
		return utils.ErrNotFound("user not found")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
