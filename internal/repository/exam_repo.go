package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// ExamRepository 考试数据访问接口
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	List(ctx context.Context, offset, limit int) ([]model.Exam, int64, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Exam, error)
	ListUpcomingByCourse(ctx context.Context, courseID string, after time.Time) ([]model.Exam, error)
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id string) error
}

// examRepo ExamRepository 的 GORM 实现
type examRepo struct {
	db *gorm.DB
}

// NewExamRepo 创建 ExamRepository 实例
func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepo) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Course").
		Where("exam_id = ?", id).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) List(ctx context.Context, offset, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Exam{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Subject").Preload("Course").
		Offset(offset).Limit(limit).
		Order("exam_date DESC").
		Find(&exams).Error; err != nil {
		return nil, 0, err
	}

	return exams, total, nil
}

func (r *examRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("course_id = ?", courseID).
		Order("exam_date DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepo) ListUpcomingByCourse(ctx context.Context, courseID string, after time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("course_id = ? AND exam_date > ?", courseID, after.Format("2006-01-02")).
		Order("exam_date ASC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepo) Update(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Save(exam).Error
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("exam_id = ?", id).
		Delete(&model.Exam{}).Error
}
