package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
	pkgerrors "sms-portal/backend/pkg/errors"
)

// ── 作业模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("作业不存在")
	ErrSubmissionNotFound = errors.New("作业提交不存在")
	ErrSubmissionExists   = errors.New("该学生已提交过此作业")
)

// AssignmentService 作业业务接口
type AssignmentService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.AssignmentResponse, int64, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, callerID, id string) error
	// 提交
	Submit(ctx context.Context, callerID, assignmentID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, callerID, assignmentID string) ([]dto.SubmissionResponse, error)
	GradeSubmission(ctx context.Context, callerID, submissionID string, req *dto.GradeSubmissionRequest) (*dto.SubmissionResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, authz: authz, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, callerID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionCreate, ""); err != nil {
		return nil, err
	}

	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		TotalMarks:  req.TotalMarks,
	}
	if assignment.TotalMarks == 0 {
		assignment.TotalMarks = 100
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("布置作业失败", zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, callerID, id string) (*dto.AssignmentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionView, id); err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.AssignmentResponse, int64, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionList, ""); err != nil {
		return nil, 0, err
	}

	assignments, total, err := s.repo.Assignment.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, callerID, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionUpdate, id); err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.DueDate != nil {
		d, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, err
		}
		assignment.DueDate = d
	}
	if req.TotalMarks != nil {
		assignment.TotalMarks = *req.TotalMarks
	}

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("更新作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return s.repo.Assignment.Delete(ctx, id)
}

// ────────────────────── 提交 ──────────────────────

// Submit 学生提交作业
// (assignment, student) 唯一索引裁决重复提交。
func (s *assignmentService) Submit(ctx context.Context, callerID, assignmentID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionCreate, ""); err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	now := time.Now()
	status := model.SubmissionSubmitted
	if now.After(assignment.DueDate) {
		status = model.SubmissionLate
	}

	sub := &model.AssignmentSubmission{
		AssignmentID:   assignmentID,
		StudentID:      req.StudentID,
		SubmissionDate: &now,
		Status:         status,
	}

	if err := s.repo.Assignment.CreateSubmission(ctx, sub); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrSubmissionExists
		}
		s.logger.Error("提交作业失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponse(sub), nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, callerID, assignmentID string) ([]dto.SubmissionResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionList, ""); err != nil {
		return nil, err
	}

	subs, err := s.repo.Assignment.ListSubmissions(ctx, assignmentID)
	if err != nil {
		s.logger.Error("列出作业提交失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, *toSubmissionResponse(&subs[i]))
	}
	return result, nil
}

func (s *assignmentService) GradeSubmission(ctx context.Context, callerID, submissionID string, req *dto.GradeSubmissionRequest) (*dto.SubmissionResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAssignment, ActionUpdate, submissionID); err != nil {
		return nil, err
	}

	sub, err := s.repo.Assignment.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	marks := req.Marks
	sub.Marks = &marks
	sub.Feedback = req.Feedback
	if sub.Status == model.SubmissionPending {
		sub.Status = model.SubmissionSubmitted
	}

	if err := s.repo.Assignment.UpdateSubmission(ctx, sub); err != nil {
		s.logger.Error("批改作业失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponse(sub), nil
}

// ── 内部辅助方法 ──

func toAssignmentResponse(assignment *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:          assignment.AssignmentID,
		SubjectID:   assignment.SubjectID,
		TeacherID:   assignment.TeacherID,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     assignment.DueDate.Format(time.RFC3339),
		TotalMarks:  assignment.TotalMarks,
		CreatedAt:   assignment.CreatedAt.Format(time.RFC3339),
	}
	if assignment.Subject != nil {
		resp.SubjectName = assignment.Subject.Name
	}
	return resp
}

func toSubmissionResponse(sub *model.AssignmentSubmission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:           sub.SubmissionID,
		AssignmentID: sub.AssignmentID,
		StudentID:    sub.StudentID,
		Marks:        sub.Marks,
		Feedback:     sub.Feedback,
		Status:       string(sub.Status),
	}
	if sub.SubmissionDate != nil {
		resp.SubmissionDate = sub.SubmissionDate.Format(time.RFC3339)
	}
	return resp
}
