package services

import (
	"context"
	"fmt"
	"strings"

	"pos-kemasan/apperr"
	"pos-kemasan/logger"
	"pos-kemasan/models"
	"pos-kemasan/repositories"
	"pos-kemasan/utils"
)

type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"required"`
}

type UserService struct {
	store *repositories.Store
}

func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	users, err := s.store.Users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.UserProfile, len(users))
	for i := range users {
		profiles[i] = users[i].Profile()
	}
	return profiles, nil
}

func (s *UserService) normalize(in *UserInput) (models.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
	if err := validateStruct(*in); err != nil {
		return "", err
	}
	role := models.Role(in.Role)
	if !role.Valid() {
		names := make([]string, len(models.Roles))
		for i, r := range models.Roles {
			names[i] = string(r)
		}
		return "", apperr.Validation("role", fmt.Sprintf("role harus salah satu dari: %s.", strings.Join(names, ", ")))
	}
	return role, nil
}

// Create adds a user with a bcrypt hashed password.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.UserProfile, error) {
	role, err := s.normalize(&in)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < 6 {
		return nil, apperr.Validation("password", "password minimal 6 karakter.")
	}
	taken, err := s.store.Users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email sudah terdaftar.")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Storage("hash password", err)
	}
	user := &models.User{Name: in.Name, Email: in.Email, Password: hash, Role: role}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("user created", "user_id", user.ID, "role", role)
	p := user.Profile()
	return &p, nil
}

// Update changes name, email and role. The password changes only when a new
// one is given.
func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*models.UserProfile, error) {
	role, err := s.normalize(&in)
	if err != nil {
		return nil, err
	}
	if in.Password != "" && len(in.Password) < 6 {
		return nil, apperr.Validation("password", "password minimal 6 karakter.")
	}

	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.Users.EmailTaken(ctx, in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email sudah terdaftar.")
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Role = role
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, apperr.Storage("hash password", err)
		}
		user.Password = hash
	}
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

// Delete removes a user. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, id uint, actor Actor) error {
	if id == actor.UserID {
		return apperr.Validation("id", "Tidak dapat menghapus akun sendiri.")
	}
	if err := s.store.Users.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("user deleted", "user_id", id, "by", actor.UserID)
	return nil
}
