package repository

import (
	"context"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByClassTeacher(ctx context.Context, teacherID string) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// 课程-科目关联
	AddSubject(ctx context.Context, cs *model.CourseSubject) error
	ListSubjects(ctx context.Context, courseID string) ([]model.CourseSubject, error)
	RemoveSubject(ctx context.Context, courseID, subjectID string) error
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByClassTeacher(ctx context.Context, teacherID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("class_teacher_id = ?", teacherID).
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&total).Error
	return total, err
}

func (r *courseRepo) AddSubject(ctx context.Context, cs *model.CourseSubject) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *courseRepo) ListSubjects(ctx context.Context, courseID string) ([]model.CourseSubject, error) {
	var list []model.CourseSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("course_id = ?", courseID).
		Find(&list).Error
	return list, err
}

func (r *courseRepo) RemoveSubject(ctx context.Context, courseID, subjectID string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND subject_id = ?", courseID, subjectID).
		Delete(&model.CourseSubject{}).Error
}
