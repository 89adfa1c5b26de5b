package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/users/auth/dto"
	authRepo "ievents_backend/internals/features/users/auth/repository"
	userModel "ievents_backend/internals/features/users/user/model"
	helper "ievents_backend/internals/helpers"
)

type AuthService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

/* ==========================
   REGISTER
========================== */

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*userModel.UserModel, error) {
	if !constants.IsValidRole(req.Role) {
		return nil, helper.InvalidInput("invalid role").WithHint("validRoles", constants.AllRoles)
	}
	if req.Role == constants.RoleMethodist {
		if err := s.ensureMethodistBootstrap(ctx); err != nil {
			return nil, err
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, helper.Internal(err, "password hashing failed")
	}

	u := &userModel.UserModel{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	if err := authRepo.CreateUser(s.DB.WithContext(ctx), u); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.Conflict("email already registered")
		}
		return nil, helper.Internal(err, "failed to create user")
	}
	return u, nil
}

// ensureMethodistBootstrap: hanya methodist pertama yang boleh daftar sendiri.
// Berikutnya dipromosikan lewat PATCH /api/users/:id/role.
func (s *AuthService) ensureMethodistBootstrap(ctx context.Context) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleMethodist).
		Count(&n).Error; err != nil {
		return helper.Internal(err, "failed to check methodist accounts")
	}
	if n > 0 {
		return helper.Forbidden("methodist accounts are granted by an existing methodist").
			WithHint("selfSignupRoles", constants.SelfSignupRoles)
	}
	return nil
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, *userModel.UserModel, error) {
	u, err := authRepo.FindUserByEmail(s.DB.WithContext(ctx), req.Email)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, nil, helper.InvalidInput("invalid email or password")
		}
		return nil, nil, helper.Internal(err, "failed to load user")
	}
	if !CheckPassword(u.Password, req.Password) {
		return nil, nil, helper.InvalidInput("invalid email or password")
	}
	if !u.IsActive {
		return nil, nil, helper.Forbidden("account is deactivated")
	}

	token, exp, err := IssueAccessToken(u, s.Now())
	if err != nil {
		return nil, nil, helper.Internal(err, "failed to issue token")
	}
	return &dto.LoginResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp.Unix()}, u, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	u, err := authRepo.FindUserByID(s.DB.WithContext(ctx), userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("user not found")
		}
		return nil, helper.Internal(err, "failed to load user")
	}
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	u, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(u.Password, req.CurrentPassword) {
		return helper.InvalidInput("current password is incorrect")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return helper.Internal(err, "password hashing failed")
	}
	if err := authRepo.UpdateUserPassword(s.DB.WithContext(ctx), u.ID, hash); err != nil {
		return helper.Internal(err, "failed to update password")
	}
	return nil
}
