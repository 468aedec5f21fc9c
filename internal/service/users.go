package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_admin/internal/hash"
	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *UserService) Create(ctx context.Context, actor string, req transport.UserCreate) (*models.User, error) {
	if !validRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	actor = actorOrAnonymous(actor)

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Role:         req.Role,
	}
	err = s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		taken, err := tx.EmailTaken(ctx, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email %s already registered", ErrConflict, user.Email)
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			return storeError(err)
		}
		return tx.AppendLog(ctx, actor, models.ActionAdd, models.TableUsers, user.ID, map[string]any{"name": user.Name})
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, models.ActionAdd, models.TableUsers, user.ID, actor, user)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// Update replaces every field. An empty password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, actor string, id uint, req transport.UserUpdate) (*models.User, error) {
	if !validRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	var pwHash string
	if req.Password != "" {
		h, err := hash.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		pwHash = h
	}
	actor = actorOrAnonymous(actor)

	var updated *models.User
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetUser(ctx, id); err != nil {
			return rowError(err, models.TableUsers, id)
		}
		taken, err := tx.EmailTaken(ctx, req.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email %s already registered", ErrConflict, req.Email)
		}
		updated, err = tx.UpdateUser(ctx, id, func(u *models.User) {
			u.Name = req.Name
			u.Email = req.Email
			u.PhoneNumber = req.PhoneNumber
			u.Address = req.Address
			u.Role = req.Role
			if pwHash != "" {
				u.PasswordHash = pwHash
			}
		})
		if err != nil {
			return rowError(err, models.TableUsers, id)
		}
		return tx.AppendLog(ctx, actor, models.ActionUpdate, models.TableUsers, id, map[string]any{"name": updated.Name})
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, models.ActionUpdate, models.TableUsers, id, actor, updated)
	return updated, nil
}

// Delete reports whether a row was removed. Nothing is logged for a miss.
func (s *UserService) Delete(ctx context.Context, actor string, id uint) (bool, error) {
	actor = actorOrAnonymous(actor)
	var found bool
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		var err error
		found, err = tx.DeleteUser(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if !found {
			return nil
		}
		return tx.AppendLog(ctx, actor, models.ActionDelete, models.TableUsers, id, nil)
	})
	if err != nil {
		return false, err
	}
	if found {
		publish(ctx, s.Events, models.ActionDelete, models.TableUsers, id, actor, nil)
	}
	return found, nil
}

func validRole(role string) bool {
	return slices.Contains(models.Roles, role)
}

// rowError is storeError for operations on one existing row.
func rowError(err error, table string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: no row %d in %s", ErrNotFound, id, table)
	}
	return storeError(err)
}

// storeError maps driver failures onto service sentinels.
func storeError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case repo.IsDuplicate(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case repo.IsForeignKey(err):
		return fmt.Errorf("%w: referenced row missing or still in use", ErrConflict)
	default:
		return err
	}
}
