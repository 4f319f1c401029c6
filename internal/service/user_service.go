package service

import (
	"context"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

// UserService covers the admin-facing users collection plus the
// self-profile operations.
type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, username string) error
	UpdateSelf(ctx context.Context, user *models.User, req dto.UpdateUserDTO) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page, pageSize)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error) {
	if req.Username == reservedUsername {
		return nil, NewValidationError("username", "Username \"me\" is reserved.")
	}
	if err := s.checkUnique(ctx, req.Username, req.Email, ""); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, NewValidationError("username", "A user with that username or email already exists.")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to any user, role included. Admin only;
// the handler owns the permission check.
func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, user, req); err != nil {
		return nil, err
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	return s.save(ctx, user)
}

// UpdateSelf applies a partial update to the caller's own profile. Role is
// always forced back to its stored value so the payload cannot elevate
// privileges.
func (s *userService) UpdateSelf(ctx context.Context, user *models.User, req dto.UpdateUserDTO) (*models.User, error) {
	if err := s.apply(ctx, user, req); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	err := s.userRepo.Delete(ctx, username)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// apply copies the non-nil profile fields over, revalidating the reserved
// name and the uniqueness rules when username or email change.
func (s *userService) apply(ctx context.Context, user *models.User, req dto.UpdateUserDTO) error {
	if req.Username != nil && *req.Username != user.Username {
		if *req.Username == reservedUsername {
			return NewValidationError("username", "Username \"me\" is reserved.")
		}
		if err := s.checkUnique(ctx, *req.Username, "", user.ID); err != nil {
			return err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkUnique(ctx, "", *req.Email, user.ID); err != nil {
			return err
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	return nil
}

func (s *userService) save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, NewValidationError("username", "A user with that username or email already exists.")
		}
		return nil, err
	}
	return user, nil
}

// checkUnique rejects a username or email already held by another user.
// excludeID skips the user being updated.
func (s *userService) checkUnique(ctx context.Context, username, email, excludeID string) error {
	if username != "" {
		existing, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil && !repository.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return NewValidationError("username", "A user with that username already exists.")
		}
	}
	if email != "" {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil && !repository.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return NewValidationError("email", "A user with that email already exists.")
		}
	}
	return nil
}
