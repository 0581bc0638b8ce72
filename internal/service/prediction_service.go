package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/repository"
)

// ── 通过预测 ──
//
// 规则是确定性的：平均分 ≥ 40 且出勤率 ≥ 75 判 Pass，否则 Fail。
// 非有限数值输入一律判 Fail（fails closed），预测永不因坏数据报错。

// Outcome 预测结果
type Outcome string

const (
	OutcomePass Outcome = "Pass"
	OutcomeFail Outcome = "Fail"
)

// Classify 纯判定函数
func Classify(averageMarks, attendancePercent float64) Outcome {
	if math.IsNaN(averageMarks) || math.IsInf(averageMarks, 0) {
		return OutcomeFail
	}
	if math.IsNaN(attendancePercent) || math.IsInf(attendancePercent, 0) {
		return OutcomeFail
	}
	if averageMarks >= 40 && attendancePercent >= 75 {
		return OutcomePass
	}
	return OutcomeFail
}

// PredictionService 通过预测业务接口
type PredictionService interface {
	// Predict 计算某学生的出勤率、平均分与预测结果
	// 访问权限与学生 view 一致：管理员/教师，学生本人，家长自己的孩子。
	Predict(ctx context.Context, callerID, studentID string) (*dto.PredictionResponse, error)
	// AttendancePercent 出勤率 = 100·present/total，无考勤记录为 0
	AttendancePercent(ctx context.Context, studentID string) (float64, error)
}

type predictionService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewPredictionService 创建 PredictionService 实例
func NewPredictionService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) PredictionService {
	return &predictionService{repo: repo, authz: authz, logger: logger}
}

func (s *predictionService) Predict(ctx context.Context, callerID, studentID string) (*dto.PredictionResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionView, studentID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	attendance, err := s.AttendancePercent(ctx, studentID)
	if err != nil {
		s.logger.Error("计算出勤率失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	avgMarks, ok, err := s.repo.Result.AvgMarksByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("计算平均分失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if !ok {
		avgMarks = 0
	}

	return &dto.PredictionResponse{
		StudentID:         studentID,
		AttendancePercent: attendance,
		AverageMarks:      avgMarks,
		Outcome:           string(Classify(avgMarks, attendance)),
	}, nil
}

func (s *predictionService) AttendancePercent(ctx context.Context, studentID string) (float64, error) {
	total, present, err := s.repo.Attendance.CountByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return 100 * float64(present) / float64(total), nil
}
