package repository

import (
	"context"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	GetByProfileID(ctx context.Context, profileID string) (*model.Teacher, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.Teacher, error)
	List(ctx context.Context) ([]model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// 授课关联
	AddSubject(ctx context.Context, ts *model.TeacherSubject) error
	ListSubjects(ctx context.Context, teacherID string) ([]model.TeacherSubject, error)
	RemoveSubject(ctx context.Context, teacherID, subjectID, courseID string) error
}

// teacherRepo TeacherRepository 的 GORM 实现
type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Profile.User").
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByProfileID(ctx context.Context, profileID string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Profile.User").
		Order("employee_id ASC").
		Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		Delete(&model.Teacher{}).Error
}

func (r *teacherRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Teacher{}).Count(&total).Error
	return total, err
}

func (r *teacherRepo) AddSubject(ctx context.Context, ts *model.TeacherSubject) error {
	return r.db.WithContext(ctx).Create(ts).Error
}

func (r *teacherRepo) ListSubjects(ctx context.Context, teacherID string) ([]model.TeacherSubject, error) {
	var list []model.TeacherSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Course").
		Where("teacher_id = ?", teacherID).
		Find(&list).Error
	return list, err
}

func (r *teacherRepo) RemoveSubject(ctx context.Context, teacherID, subjectID, courseID string) error {
	return r.db.WithContext(ctx).
		Where("teacher_id = ? AND subject_id = ? AND course_id = ?", teacherID, subjectID, courseID).
		Delete(&model.TeacherSubject{}).Error
}
