package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	uModel "ievents_backend/internals/features/users/user/model"
	helper "ievents_backend/internals/helpers"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

var userSortColumns = map[string]string{
	"full_name":  "full_name",
	"email":      "email",
	"created_at": "created_at",
}

// List: user aktif, filter role + pencarian nama/email (case-insensitive), paginated.
func (s *UserService) List(ctx context.Context, role, q string, p helper.PageParams) ([]uModel.UserModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&uModel.UserModel{}).Where("is_active = ?", true)
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, helper.Internal(err, "failed to count users")
	}

	var rows []uModel.UserModel
	if err := tx.Order(p.OrderClause(userSortColumns, "full_name")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, helper.Internal(err, "failed to load users")
	}
	return rows, total, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*uModel.UserModel, error) {
	var u uModel.UserModel
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("user not found")
		}
		return nil, helper.Internal(err, "failed to load user")
	}
	return &u, nil
}

// ChangeRole: aksi administratif (methodist). Satu akun tepat satu role.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role string) (*uModel.UserModel, error) {
	if !constants.IsValidRole(role) {
		return nil, helper.InvalidInput("invalid role").WithHint("validRoles", constants.AllRoles)
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role == role {
		return u, nil
	}
	if err := s.DB.WithContext(ctx).Model(u).Update("role", role).Error; err != nil {
		return nil, helper.Internal(err, "failed to update role")
	}
	u.Role = role
	return u, nil
}
