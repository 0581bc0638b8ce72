package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
)

// ── 仪表盘聚合 ──
//
// 纯读侧计算，按角色分发。所有比率和平均值带显式零兜底：
// 空数据集永远得到 0 / 0.00，不会除零。

// passThreshold 通过线（成绩百分比）
const passThreshold = 40.0

// DashboardService 仪表盘业务接口
type DashboardService interface {
	// Dashboard 按访问者角色返回对应视图
	Dashboard(ctx context.Context, callerID string) (interface{}, error)
	Admin(ctx context.Context) (*dto.AdminDashboardResponse, error)
	Teacher(ctx context.Context, profileID string) (*dto.TeacherDashboardResponse, error)
	Student(ctx context.Context, profileID string) (*dto.StudentDashboardResponse, error)
	Parent(ctx context.Context, profileID string) (*dto.ParentDashboardResponse, error)
}

type dashboardService struct {
	repo       *repository.Repository
	authz      AuthzService
	prediction PredictionService
	logger     *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, authz AuthzService, prediction PredictionService, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, authz: authz, prediction: prediction, logger: logger}
}

// ────────────────────── Dashboard ──────────────────────

func (s *dashboardService) Dashboard(ctx context.Context, callerID string) (interface{}, error) {
	role, profile, err := s.authz.ActorRole(ctx, callerID)
	if err != nil {
		return nil, ErrNotAuthorized
	}

	switch role {
	case model.RoleAdmin:
		return s.Admin(ctx)
	case model.RoleTeacher:
		return s.Teacher(ctx, profile.ProfileID)
	case model.RoleStudent:
		return s.Student(ctx, profile.ProfileID)
	case model.RoleParent:
		return s.Parent(ctx, profile.ProfileID)
	default:
		// 默认角色 user 没有业务视图
		return nil, ErrNotAuthorized
	}
}

// ────────────────────── Admin ──────────────────────

func (s *dashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	resp := &dto.AdminDashboardResponse{
		SubjectAverages: []dto.SubjectAverageResponse{},
	}

	var err error
	if resp.TotalStudents, err = s.repo.Student.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalTeachers, err = s.repo.Teacher.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalCourses, err = s.repo.Course.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalSubjects, err = s.repo.Subject.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalResults, err = s.repo.Result.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalAssignments, err = s.repo.Assignment.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalAttendanceRecords, err = s.repo.Attendance.Count(ctx); err != nil {
		return nil, err
	}

	if resp.Gender.Male, err = s.repo.Student.CountByGender(ctx, model.GenderMale); err != nil {
		return nil, err
	}
	if resp.Gender.Female, err = s.repo.Student.CountByGender(ctx, model.GenderFemale); err != nil {
		return nil, err
	}
	if resp.Gender.Other, err = s.repo.Student.CountByGender(ctx, model.GenderOther); err != nil {
		return nil, err
	}

	// 师生比：一位小数，无教师时为 0
	if resp.TotalTeachers > 0 {
		ratio := float64(resp.TotalStudents) / float64(resp.TotalTeachers)
		resp.TeacherStudentRatio = math.Round(ratio*10) / 10
	}

	if resp.PassCount, resp.FailCount, err = s.repo.Result.CountPassFail(ctx, passThreshold); err != nil {
		return nil, err
	}

	averages, err := s.repo.Result.AvgPercentageBySubject(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range averages {
		resp.SubjectAverages = append(resp.SubjectAverages, dto.SubjectAverageResponse{
			SubjectID:   a.SubjectID,
			SubjectName: a.SubjectName,
			AvgPercent:  math.Round(a.AvgPercent*100) / 100,
		})
	}

	return resp, nil
}

// ────────────────────── Teacher ──────────────────────

func (s *dashboardService) Teacher(ctx context.Context, profileID string) (*dto.TeacherDashboardResponse, error) {
	resp := &dto.TeacherDashboardResponse{
		Courses:            []dto.CourseResponse{},
		PendingAssignments: []dto.AssignmentResponse{},
	}

	teacher, err := s.repo.Teacher.GetByProfileID(ctx, profileID)
	if err != nil {
		// 角色已是 teacher 但教师行缺失：空视图而不是报错
		return resp, nil
	}

	courses, err := s.repo.Course.ListByClassTeacher(ctx, teacher.TeacherID)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		resp.Courses = append(resp.Courses, dto.CourseResponse{
			ID:       courses[i].CourseID,
			Name:     courses[i].Name,
			Code:     courses[i].Code,
			Semester: courses[i].Semester,
			Section:  courses[i].Section,
			Capacity: courses[i].Capacity,
		})
	}

	// 存在待批提交的作业
	assignments, err := s.repo.Assignment.ListByTeacher(ctx, teacher.TeacherID)
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		subs, err := s.repo.Assignment.ListSubmissions(ctx, assignments[i].AssignmentID)
		if err != nil {
			continue
		}
		for j := range subs {
			if subs[j].Status == model.SubmissionPending {
				resp.PendingAssignments = append(resp.PendingAssignments, *toAssignmentResponse(&assignments[i]))
				break
			}
		}
	}

	return resp, nil
}

// ────────────────────── Student ──────────────────────

func (s *dashboardService) Student(ctx context.Context, profileID string) (*dto.StudentDashboardResponse, error) {
	resp := &dto.StudentDashboardResponse{
		Results:             []dto.ResultResponse{},
		UpcomingAssignments: []dto.AssignmentResponse{},
	}

	student, err := s.repo.Student.GetByProfileID(ctx, profileID)
	if err != nil {
		return resp, nil
	}

	summary, err := s.childSummary(ctx, student.StudentID, student.CourseID, 5)
	if err != nil {
		return nil, err
	}
	resp.AttendancePercent = summary.AttendancePercent
	resp.Results = summary.Results
	resp.UpcomingAssignments = summary.Assignments

	return resp, nil
}

// ────────────────────── Parent ──────────────────────

func (s *dashboardService) Parent(ctx context.Context, profileID string) (*dto.ParentDashboardResponse, error) {
	resp := &dto.ParentDashboardResponse{Children: []dto.ChildSummary{}}

	parent, err := s.repo.Parent.GetByProfileID(ctx, profileID)
	if err != nil {
		return resp, nil
	}

	children, err := s.repo.Student.ListByParent(ctx, parent.ParentID)
	if err != nil {
		return nil, err
	}

	for i := range children {
		summary, err := s.childSummary(ctx, children[i].StudentID, children[i].CourseID, 0)
		if err != nil {
			return nil, err
		}
		summary.StudentNo = children[i].StudentNo
		if children[i].Profile != nil && children[i].Profile.User != nil {
			summary.Name = children[i].Profile.User.Username
		}
		resp.Children = append(resp.Children, *summary)
	}

	return resp, nil
}

// ── 内部辅助方法 ──

// childSummary 单个学生的出勤率、成绩与所在课程作业
// limit > 0 时只取截止时间最近的前 limit 条作业。
func (s *dashboardService) childSummary(ctx context.Context, studentID, courseID string, limit int) (*dto.ChildSummary, error) {
	summary := &dto.ChildSummary{
		StudentID:   studentID,
		Results:     []dto.ResultResponse{},
		Assignments: []dto.AssignmentResponse{},
	}

	attendance, err := s.prediction.AttendancePercent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	summary.AttendancePercent = attendance

	results, err := s.repo.Result.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		summary.Results = append(summary.Results, *toResultResponse(&results[i]))
	}

	assignments, err := s.repo.Assignment.ListUpcomingByCourse(ctx, courseID, time.Now())
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		if limit > 0 && len(summary.Assignments) >= limit {
			break
		}
		summary.Assignments = append(summary.Assignments, *toAssignmentResponse(&assignments[i]))
	}

	return summary, nil
}
