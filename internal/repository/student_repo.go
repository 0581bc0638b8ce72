package repository

import (
	"context"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// StudentScope 学生列表行过滤器
//
// 权限引擎根据访问者角色产出行过滤器，由仓储层翻译成查询条件：
//   - All 为 true：不过滤（管理员）
//   - ClassTeacherID 非空：仅该教师任班主任课程下的学生
//   - StudentID 非空：仅该学生本人
//   - ParentID 非空：仅该家长的孩子
//
// 零值 Scope 表示空集（非管理员且无归属行时的兜底拒绝）。
type StudentScope struct {
	All            bool
	ClassTeacherID string
	StudentID      string
	ParentID       string
}

// Empty 判断是否为空集过滤器
func (s *StudentScope) Empty() bool {
	return !s.All && s.ClassTeacherID == "" && s.StudentID == "" && s.ParentID == ""
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByProfileID(ctx context.Context, profileID string) (*model.Student, error)
	List(ctx context.Context, scope *StudentScope, offset, limit int) ([]model.Student, int64, error)
	ListByParent(ctx context.Context, parentID string) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	CountByGender(ctx context.Context, gender model.Gender) (int64, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Profile.User").
		Preload("Course").
		Preload("Parent").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByProfileID(ctx context.Context, profileID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// List 按行过滤器分页列出学生
func (r *studentRepo) List(ctx context.Context, scope *StudentScope, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	if scope == nil || scope.Empty() {
		return students, 0, nil
	}

	db := r.db.WithContext(ctx).Model(&model.Student{})
	switch {
	case scope.All:
		// 不过滤
	case scope.ClassTeacherID != "":
		db = db.Joins("JOIN courses ON courses.course_id = students.course_id").
			Where("courses.class_teacher_id = ?", scope.ClassTeacherID)
	case scope.StudentID != "":
		db = db.Where("students.student_id = ?", scope.StudentID)
	case scope.ParentID != "":
		db = db.Where("students.parent_id = ?", scope.ParentID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Profile.User").Preload("Course").Preload("Parent").
		Offset(offset).Limit(limit).
		Order("students.roll_number ASC").
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepo) ListByParent(ctx context.Context, parentID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Course").
		Where("parent_id = ?", parentID).
		Order("roll_number ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", id).
		Delete(&model.Student{}).Error
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&total).Error
	return total, err
}

func (r *studentRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("course_id = ?", courseID).
		Count(&total).Error
	return total, err
}

func (r *studentRepo) CountByGender(ctx context.Context, gender model.Gender) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("gender = ?", gender).
		Count(&total).Error
	return total, err
}
