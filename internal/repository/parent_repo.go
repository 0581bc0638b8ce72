package repository

import (
	"context"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// ParentRepository 家长数据访问接口
type ParentRepository interface {
	Create(ctx context.Context, parent *model.Parent) error
	GetByID(ctx context.Context, id string) (*model.Parent, error)
	GetByProfileID(ctx context.Context, profileID string) (*model.Parent, error)
	List(ctx context.Context) ([]model.Parent, error)
	Update(ctx context.Context, parent *model.Parent) error
	Delete(ctx context.Context, id string) error
}

// parentRepo ParentRepository 的 GORM 实现
type parentRepo struct {
	db *gorm.DB
}

// NewParentRepo 创建 ParentRepository 实例
func NewParentRepo(db *gorm.DB) ParentRepository {
	return &parentRepo{db: db}
}

func (r *parentRepo) Create(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Create(parent).Error
}

func (r *parentRepo) GetByID(ctx context.Context, id string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) GetByProfileID(ctx context.Context, profileID string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) List(ctx context.Context) ([]model.Parent, error) {
	var parents []model.Parent
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&parents).Error
	return parents, err
}

func (r *parentRepo) Update(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Save(parent).Error
}

// Delete 删除家长
// students.parent_id 外键为 ON DELETE SET NULL：孩子记录保留，仅清除关联。
func (r *parentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Delete(&model.Parent{}).Error
}
