package service

import (
	"go.uber.org/zap"

	"sms-portal/backend/config"
	"sms-portal/backend/internal/repository"
	"sms-portal/backend/pkg/jwt"
	"sms-portal/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Authz      AuthzService
	Course     CourseService
	Subject    SubjectService
	Teacher    TeacherService
	Parent     ParentService
	Student    StudentService
	Attendance AttendanceService
	Assignment AssignmentService
	Exam       ExamService
	Result     ResultService
	Timetable  TimetableService
	Prediction PredictionService
	Dashboard  DashboardService
	Export     ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil：黑名单与限流静默降级。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	authz := NewAuthzService(repo, logger)
	prediction := NewPredictionService(repo, authz, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, authz, logger),
		Authz:      authz,
		Course:     NewCourseService(repo, authz, logger),
		Subject:    NewSubjectService(repo, authz, logger),
		Teacher:    NewTeacherService(repo, authz, logger),
		Parent:     NewParentService(repo, authz, logger),
		Student:    NewStudentService(repo, authz, logger),
		Attendance: NewAttendanceService(repo, authz, logger),
		Assignment: NewAssignmentService(repo, authz, logger),
		Exam:       NewExamService(repo, authz, logger),
		Result:     NewResultService(repo, authz, logger),
		Timetable:  NewTimetableService(repo, authz, logger),
		Prediction: prediction,
		Dashboard:  NewDashboardService(repo, authz, prediction, logger),
		Export:     NewExportService(repo, authz, logger),
	}
}
