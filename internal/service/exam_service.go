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
)

// ── 考试模块业务错误 ──

var ErrExamNotFound = errors.New("考试不存在")

// ExamService 考试业务接口
type ExamService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateExamRequest) (*dto.ExamResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.ExamResponse, error)
	List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.ExamResponse, int64, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateExamRequest) (*dto.ExamResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type examService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewExamService 创建 ExamService 实例
func NewExamService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) ExamService {
	return &examService{repo: repo, authz: authz, logger: logger}
}

func (s *examService) Create(ctx context.Context, callerID string, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityExam, ActionCreate, ""); err != nil {
		return nil, err
	}

	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	examDate, err := time.Parse("2006-01-02", req.ExamDate)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		SubjectID:  req.SubjectID,
		CourseID:   req.CourseID,
		ExamName:   req.ExamName,
		ExamType:   model.ExamType(req.ExamType),
		ExamDate:   examDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Duration:   req.Duration,
		TotalMarks: req.TotalMarks,
		Room:       req.Room,
	}
	if exam.TotalMarks == 0 {
		exam.TotalMarks = 100
	}

	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		s.logger.Error("创建考试失败", zap.Error(err))
		return nil, err
	}
	return toExamResponse(exam), nil
}

func (s *examService) GetByID(ctx context.Context, callerID, id string) (*dto.ExamResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityExam, ActionView, id); err != nil {
		return nil, err
	}

	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toExamResponse(exam), nil
}

func (s *examService) List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.ExamResponse, int64, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityExam, ActionList, ""); err != nil {
		return nil, 0, err
	}

	exams, total, err := s.repo.Exam.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出考试失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		result = append(result, *toExamResponse(&exams[i]))
	}
	return result, total, nil
}

func (s *examService) Update(ctx context.Context, callerID, id string, req *dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityExam, ActionUpdate, id); err != nil {
		return nil, err
	}

	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	if req.ExamName != nil {
		exam.ExamName = *req.ExamName
	}
	if req.ExamDate != nil {
		d, err := time.Parse("2006-01-02", *req.ExamDate)
		if err != nil {
			return nil, err
		}
		exam.ExamDate = d
	}
	if req.StartTime != nil {
		exam.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		exam.EndTime = *req.EndTime
	}
	if req.Duration != nil {
		exam.Duration = req.Duration
	}
	if req.TotalMarks != nil {
		exam.TotalMarks = *req.TotalMarks
	}
	if req.Room != nil {
		exam.Room = *req.Room
	}

	if err := s.repo.Exam.Update(ctx, exam); err != nil {
		s.logger.Error("更新考试失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toExamResponse(exam), nil
}

func (s *examService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityExam, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Exam.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}
	return s.repo.Exam.Delete(ctx, id)
}

// ── 内部辅助方法 ──

func toExamResponse(exam *model.Exam) *dto.ExamResponse {
	resp := &dto.ExamResponse{
		ID:         exam.ExamID,
		SubjectID:  exam.SubjectID,
		CourseID:   exam.CourseID,
		ExamName:   exam.ExamName,
		ExamType:   string(exam.ExamType),
		ExamDate:   exam.ExamDate.Format("2006-01-02"),
		StartTime:  exam.StartTime,
		EndTime:    exam.EndTime,
		Duration:   exam.Duration,
		TotalMarks: exam.TotalMarks,
		Room:       exam.Room,
		CreatedAt:  exam.CreatedAt.Format(time.RFC3339),
	}
	if exam.Subject != nil {
		resp.SubjectName = exam.Subject.Name
	}
	if exam.Course != nil {
		resp.CourseName = exam.Course.Name
	}
	return resp
}
