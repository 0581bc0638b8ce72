package repository

import (
	"context"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// SubjectAverage 某科目的平均百分比（管理员分析用）
type SubjectAverage struct {
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	AvgPercent  float64 `json:"avg_percent"`
}

// ResultRepository 成绩数据访问接口
type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	GetByID(ctx context.Context, id string) (*model.Result, error)
	List(ctx context.Context, offset, limit int) ([]model.Result, int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Result, error)
	ListByExam(ctx context.Context, examID string) ([]model.Result, error)
	Update(ctx context.Context, result *model.Result) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// AvgMarksByStudent 某学生全部成绩的平均分；无成绩时 ok 为 false
	AvgMarksByStudent(ctx context.Context, studentID string) (avg float64, ok bool, err error)
	// CountPassFail 按百分比阈值统计通过/未通过的成绩条数
	CountPassFail(ctx context.Context, threshold float64) (pass int64, fail int64, err error)
	// AvgPercentageBySubject 各科目平均百分比
	AvgPercentageBySubject(ctx context.Context) ([]SubjectAverage, error)
}

// resultRepo ResultRepository 的 GORM 实现
type resultRepo struct {
	db *gorm.DB
}

// NewResultRepo 创建 ResultRepository 实例
func NewResultRepo(db *gorm.DB) ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) Create(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepo) GetByID(ctx context.Context, id string) (*model.Result, error) {
	var result model.Result
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Preload("Exam").
		Where("result_id = ?", id).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) List(ctx context.Context, offset, limit int) ([]model.Result, int64, error) {
	var results []model.Result
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Result{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").Preload("Subject").Preload("Exam").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *resultRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Result, error) {
	var results []model.Result
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Exam").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepo) ListByExam(ctx context.Context, examID string) ([]model.Result, error) {
	var results []model.Result
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("exam_id = ?", examID).
		Find(&results).Error
	return results, err
}

func (r *resultRepo) Update(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r *resultRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("result_id = ?", id).
		Delete(&model.Result{}).Error
}

func (r *resultRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Result{}).Count(&total).Error
	return total, err
}

// AvgMarksByStudent 预测规则的平均分输入
// 只统计已录入分数的成绩行（marks_obtained 非空）。
func (r *resultRepo) AvgMarksByStudent(ctx context.Context, studentID string) (float64, bool, error) {
	var row struct {
		Avg *float64
	}
	err := r.db.WithContext(ctx).Model(&model.Result{}).
		Select("AVG(marks_obtained) AS avg").
		Where("student_id = ? AND marks_obtained IS NOT NULL", studentID).
		Scan(&row).Error
	if err != nil {
		return 0, false, err
	}
	if row.Avg == nil {
		return 0, false, nil
	}
	return *row.Avg, true, nil
}

func (r *resultRepo) CountPassFail(ctx context.Context, threshold float64) (int64, int64, error) {
	var pass, fail int64

	if err := r.db.WithContext(ctx).Model(&model.Result{}).
		Where("percentage >= ?", threshold).
		Count(&pass).Error; err != nil {
		return 0, 0, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Result{}).
		Where("percentage < ?", threshold).
		Count(&fail).Error; err != nil {
		return 0, 0, err
	}

	return pass, fail, nil
}

// AvgPercentageBySubject 以 subjects 为主表：
// 没有成绩（或成绩全部未录百分比）的科目也要出现，平均值为 0。
func (r *resultRepo) AvgPercentageBySubject(ctx context.Context) ([]SubjectAverage, error) {
	var rows []SubjectAverage
	err := r.db.WithContext(ctx).Table("subjects").
		Select("subjects.subject_id AS subject_id, subjects.name AS subject_name, COALESCE(AVG(results.percentage), 0) AS avg_percent").
		Joins("LEFT JOIN results ON results.subject_id = subjects.subject_id AND results.percentage IS NOT NULL").
		Group("subjects.subject_id, subjects.name").
		Order("subjects.name ASC").
		Scan(&rows).Error
	return rows, err
}
