package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.Attendance) error
	GetByID(ctx context.Context, id string) (*model.Attendance, error)
	ListByStudent(ctx context.Context, studentID string, offset, limit int) ([]model.Attendance, int64, error)
	ListBySubjectAndDate(ctx context.Context, subjectID string, date time.Time) ([]model.Attendance, error)
	Update(ctx context.Context, record *model.Attendance) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// CountByStudent 返回某学生的考勤总数与出勤数
	CountByStudent(ctx context.Context, studentID string) (total int64, present int64, err error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Where("attendance_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string, offset, limit int) ([]model.Attendance, int64, error) {
	var records []model.Attendance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("student_id = ?", studentID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Subject").
		Offset(offset).Limit(limit).
		Order("attendance_date DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRepo) ListBySubjectAndDate(ctx context.Context, subjectID string, date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("subject_id = ? AND attendance_date = ?", subjectID, date.Format("2006-01-02")).
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) Update(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		Delete(&model.Attendance{}).Error
}

// CountByStudent 出勤率的分子分母
// 仅 present 计入出勤，late/excused 不计。
func (r *attendanceRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).Count(&total).Error
	return total, err
}

func (r *attendanceRepo) CountByStudent(ctx context.Context, studentID string) (int64, int64, error) {
	var total, present int64

	if err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("student_id = ?", studentID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("student_id = ? AND status = ?", studentID, model.AttendancePresent).
		Count(&present).Error; err != nil {
		return 0, 0, err
	}

	return total, present, nil
}
