package repository

import (
	"context"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// TimetableRepository 课表数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, entry *model.Timetable) error
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Timetable, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Timetable, error)
	Update(ctx context.Context, entry *model.Timetable) error
	Delete(ctx context.Context, id string) error
}

// timetableRepo TimetableRepository 的 GORM 实现
type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, entry *model.Timetable) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var entry model.Timetable
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Subject").
		Preload("Teacher").
		Where("timetable_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Timetable, error) {
	var entries []model.Timetable
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("course_id = ?", courseID).
		Order("day_of_week ASC, start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Timetable, error) {
	var entries []model.Timetable
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("day_of_week ASC, start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) Update(ctx context.Context, entry *model.Timetable) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		Delete(&model.Timetable{}).Error
}
