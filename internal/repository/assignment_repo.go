package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context, offset, limit int) ([]model.Assignment, int64, error)
	ListBySubject(ctx context.Context, subjectID string) ([]model.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Assignment, error)
	// ListUpcomingByCourse 某课程下截止日期在 after 之后的作业（经 course_subjects 关联）
	ListUpcomingByCourse(ctx context.Context, courseID string, after time.Time) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// 提交
	CreateSubmission(ctx context.Context, sub *model.AssignmentSubmission) error
	GetSubmission(ctx context.Context, id string) (*model.AssignmentSubmission, error)
	ListSubmissions(ctx context.Context, assignmentID string) ([]model.AssignmentSubmission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID string) ([]model.AssignmentSubmission, error)
	UpdateSubmission(ctx context.Context, sub *model.AssignmentSubmission) error
	// CountPendingByTeacher 某教师名下存在待批提交的作业数
	CountPendingByTeacher(ctx context.Context, teacherID string) (int64, error)
	CountPendingByStudent(ctx context.Context, studentID string) (int64, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) List(ctx context.Context, offset, limit int) ([]model.Assignment, int64, error) {
	var assignments []model.Assignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Assignment{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Subject").Preload("Teacher").
		Offset(offset).Limit(limit).
		Order("due_date DESC").
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *assignmentRepo) ListBySubject(ctx context.Context, subjectID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("due_date DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("due_date DESC").
		Find(&assignments).Error
	return assignments, err
}

// ListUpcomingByCourse 学生仪表盘的"待交作业"来源
// 作业挂在科目上，课程经 course_subjects 关联到科目。
func (r *assignmentRepo) ListUpcomingByCourse(ctx context.Context, courseID string, after time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Joins("JOIN course_subjects ON course_subjects.subject_id = assignments.subject_id").
		Where("course_subjects.course_id = ? AND assignments.due_date > ?", courseID, after).
		Order("assignments.due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) CreateSubmission(ctx context.Context, sub *model.AssignmentSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *assignmentRepo) GetSubmission(ctx context.Context, id string) (*model.AssignmentSubmission, error) {
	var sub model.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *assignmentRepo) ListSubmissions(ctx context.Context, assignmentID string) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Find(&subs).Error
	return subs, err
}

func (r *assignmentRepo) ListSubmissionsByStudent(ctx context.Context, studentID string) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Where("student_id = ?", studentID).
		Find(&subs).Error
	return subs, err
}

func (r *assignmentRepo) UpdateSubmission(ctx context.Context, sub *model.AssignmentSubmission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// CountPendingByTeacher 该教师名下至少有一条 pending 提交的作业数
func (r *assignmentRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).Count(&total).Error
	return total, err
}

func (r *assignmentRepo) CountPendingByTeacher(ctx context.Context, teacherID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Joins("JOIN assignment_submissions ON assignment_submissions.assignment_id = assignments.assignment_id").
		Where("assignments.teacher_id = ? AND assignment_submissions.status = ?", teacherID, model.SubmissionPending).
		Distinct("assignments.assignment_id").
		Count(&total).Error
	return total, err
}

func (r *assignmentRepo) CountPendingByStudent(ctx context.Context, studentID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AssignmentSubmission{}).
		Where("student_id = ? AND status = ?", studentID, model.SubmissionPending).
		Count(&total).Error
	return total, err
}
