package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"sms-portal/backend/internal/model"
)

// ── Classify 测试 ──

func TestClassify_BoundaryTable(t *testing.T) {
	cases := []struct {
		name       string
		marks      float64
		attendance float64
		want       Outcome
	}{
		{"双指标恰好达线", 40, 75, OutcomePass},
		{"平均分略低于线", 39.99, 75, OutcomeFail},
		{"出勤率略低于线", 40, 74.99, OutcomeFail},
		{"双指标高于线", 85, 90, OutcomePass},
		{"双指标为零", 0, 0, OutcomeFail},
		{"仅出勤达线", 10, 100, OutcomeFail},
		{"仅成绩达线", 100, 10, OutcomeFail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.marks, tc.attendance)
			if got != tc.want {
				t.Errorf("Classify(%v, %v) 期望 %s，实际 %s", tc.marks, tc.attendance, tc.want, got)
			}
		})
	}
}

func TestClassify_NonFiniteFailsClosed(t *testing.T) {
	cases := []struct {
		name       string
		marks      float64
		attendance float64
	}{
		{"平均分NaN", math.NaN(), 100},
		{"出勤率NaN", 100, math.NaN()},
		{"平均分+Inf", math.Inf(1), 100},
		{"出勤率-Inf", 100, math.Inf(-1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.marks, tc.attendance); got != OutcomeFail {
				t.Errorf("非有限输入应判 Fail，实际 %s", got)
			}
		})
	}
}

// ── Predict 测试 ──

func setupPredictionService() (PredictionService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewPredictionService(repo, authz, logger)
	return svc, tr
}

func seedAttendance(tr *testRepos, studentID string, present, absent int) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < present+absent; i++ {
		status := model.AttendancePresent
		if i >= present {
			status = model.AttendanceAbsent
		}
		id := fmt.Sprintf("att-%s-%d", studentID, i)
		tr.attendance.records[id] = &model.Attendance{
			AttendanceID:   id,
			StudentID:      studentID,
			SubjectID:      "subject-001",
			AttendanceDate: day.AddDate(0, 0, i),
			Status:         status,
		}
	}
}

func TestPredictionService_Predict_Pass(t *testing.T) {
	svc, tr := setupPredictionService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.student.students["student-001"] = &model.Student{
		StudentID: "student-001",
		ProfileID: "profile-s1",
		StudentNo: "S001",
		CourseID:  "course-001",
	}
	// 出勤 8/10 = 80%，平均分 (50+70)/2 = 60
	seedAttendance(tr, "student-001", 8, 2)
	m1, m2 := 50, 70
	tr.result.results["r1"] = &model.Result{ResultID: "r1", StudentID: "student-001", SubjectID: "sub-1", ExamID: "e1", MarksObtained: &m1}
	tr.result.results["r2"] = &model.Result{ResultID: "r2", StudentID: "student-001", SubjectID: "sub-2", ExamID: "e1", MarksObtained: &m2}

	result, err := svc.Predict(context.Background(), admin, "student-001")
	if err != nil {
		t.Fatalf("Predict 应成功: %v", err)
	}
	if result.Outcome != string(OutcomePass) {
		t.Errorf("期望 Pass，实际 %s", result.Outcome)
	}
	if result.AttendancePercent != 80 {
		t.Errorf("期望出勤率 80，实际 %v", result.AttendancePercent)
	}
	if result.AverageMarks != 60 {
		t.Errorf("期望平均分 60，实际 %v", result.AverageMarks)
	}
}

func TestPredictionService_Predict_NoData(t *testing.T) {
	svc, tr := setupPredictionService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.student.students["student-001"] = &model.Student{
		StudentID: "student-001",
		ProfileID: "profile-s1",
		StudentNo: "S001",
		CourseID:  "course-001",
	}

	result, err := svc.Predict(context.Background(), admin, "student-001")
	if err != nil {
		t.Fatalf("无数据 Predict 应成功: %v", err)
	}
	if result.AttendancePercent != 0 || result.AverageMarks != 0 {
		t.Errorf("无数据时出勤率和平均分应为 0，实际 %v / %v", result.AttendancePercent, result.AverageMarks)
	}
	if result.Outcome != string(OutcomeFail) {
		t.Errorf("无数据应判 Fail，实际 %s", result.Outcome)
	}
}

func TestPredictionService_Predict_StudentNotFound(t *testing.T) {
	svc, tr := setupPredictionService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	_, err := svc.Predict(context.Background(), admin, "no-such-student")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestPredictionService_Predict_DeniedForOtherStudent(t *testing.T) {
	svc, tr := setupPredictionService()
	// 学生 A 查学生 B 的预测应被拒绝
	actorID := tr.seedActor("user-a", model.RoleStudent)
	tr.student.students["student-a"] = &model.Student{StudentID: "student-a", ProfileID: "profile-user-a", StudentNo: "A", CourseID: "c1"}
	tr.student.students["student-b"] = &model.Student{StudentID: "student-b", ProfileID: "profile-user-b", StudentNo: "B", CourseID: "c1"}

	_, err := svc.Predict(context.Background(), actorID, "student-b")
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("期望 ErrNotAuthorized，实际: %v", err)
	}
}

func TestPredictionService_AttendancePercent_ZeroRows(t *testing.T) {
	svc, _ := setupPredictionService()

	percent, err := svc.AttendancePercent(context.Background(), "student-x")
	if err != nil {
		t.Fatalf("AttendancePercent 应成功: %v", err)
	}
	if percent != 0 {
		t.Errorf("无考勤记录应为 0，实际 %v", percent)
	}
}
