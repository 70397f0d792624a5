package services

import (
	"context"
	"fmt"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/auth"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/rbac"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStore is the persistence the user service writes to.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Count(ctx context.Context) (int, error)
}

type UserService struct {
	userRepo UserStore
	auditSvc *AuditService
	log      *zap.Logger
}

func NewUserService(userRepo UserStore, auditSvc *AuditService, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, auditSvc: auditSvc, log: log}
}

func (s *UserService) Create(ctx context.Context, actor *audit.Actor, email, firstName, lastName, role, password string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !rbac.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.auditSvc.LogCreation(ctx, actor, models.AuditEntityUser, u.ID, u.Snapshot())
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UserUpdate carries the editable staff-account fields.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
	Active    *bool
}

func (s *UserService) Update(ctx context.Context, actor *audit.Actor, id uuid.UUID, upd UserUpdate) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	oldSnap := u.Snapshot()

	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		if !rbac.IsValidRole(*upd.Role) {
			return nil, fmt.Errorf("invalid role %q", *upd.Role)
		}
		u.Role = *upd.Role
	}
	if upd.Active != nil {
		u.Active = *upd.Active
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.auditSvc.LogUpdate(ctx, actor, models.AuditEntityUser, u.ID, oldSnap, u.Snapshot(), audit.UserTrackedFields)
	return u, nil
}

// Delete deactivates a staff account and records a delete entry. Rows are
// never removed from storage: audit history references users by id, and an
// inactive account cannot sign in or pass auth.
func (s *UserService) Delete(ctx context.Context, actor *audit.Actor, id uuid.UUID) error {
	if actor != nil && actor.ID == id {
		return fmt.Errorf("cannot delete own account")
	}
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user not found")
	}
	if !u.Active {
		return fmt.Errorf("user already deleted")
	}
	snapshot := u.Snapshot()

	u.Active = false
	if err := s.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.auditSvc.LogDeletion(ctx, actor, models.AuditEntityUser, id, snapshot)
	return nil
}

// Authenticate verifies credentials for login. Inactive accounts cannot sign
// in.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.Active || !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials")
	}
	return u, nil
}

// EnsureBootstrapAdmin creates the first admin account when the user table is
// empty. Called once at startup.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, email, password string) error {
	if password == "" {
		return nil
	}
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := &models.User{Email: email, Role: rbac.RoleAdmin, PasswordHash: hash, Active: true}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return err
	}
	s.log.Info("bootstrap admin created", zap.String("email", email))
	return nil
}
