package db

import (
	"context"
	"errors"

	"newsroom/internal/domain"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model RoleModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	role := roleFromModel(model)
	return &role, nil
}

func (r *RoleRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Role, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []RoleModel
	err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.role_model_id = roles.id").
		Where("user_roles.user_model_id = ?", userID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(models))
	for _, model := range models {
		roles = append(roles, roleFromModel(model))
	}
	return roles, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := RoleModel{Name: role.Name, Permissions: role.Permissions}
	result := r.db.WithContext(ctx).Model(&RoleModel{}).
		Where("id = ?", role.ID).
		Select("name", "permissions").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func roleFromModel(model RoleModel) domain.Role {
	return domain.Role{
		ID:          model.ID,
		Name:        model.Name,
		Permissions: model.Permissions,
		CreatedAt:   model.CreatedAt,
	}
}
