package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/model"
)

// ── 测试辅助 ──

func setupResultService() (ResultService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewResultService(repo, authz, logger)
	return svc, tr
}

func seedResultDeps(tr *testRepos) {
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "p1", StudentNo: "S1", CourseID: "c-1"}
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1"}
	tr.exam.exams["e-1"] = &model.Exam{ExamID: "e-1", SubjectID: "sub-1", CourseID: "c-1", ExamName: "期中考试"}
}

// ── 等级派生测试 ──

func TestDeriveGrade_Thresholds(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{80, "A"},
		{79.99, "B"},
		{70, "B"},
		{69.99, "C"},
		{60, "C"},
		{59.99, "D"},
		{40, "D"},
		{39.99, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		if got := deriveGrade(tc.percentage); got != tc.want {
			t.Errorf("deriveGrade(%v) 期望 %s，实际 %s", tc.percentage, tc.want, got)
		}
	}
}

// ── Create 测试 ──

func TestResultService_Create_DerivesPercentageAndGrade(t *testing.T) {
	svc, tr := setupResultService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedResultDeps(tr)

	// 33/40 = 82.5% → A
	marks := 33
	resp, err := svc.Create(context.Background(), admin, &dto.CreateResultRequest{
		StudentID: "s-1", SubjectID: "sub-1", ExamID: "e-1",
		MarksObtained: &marks, TotalMarks: 40,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Percentage == nil || *resp.Percentage != 82.5 {
		t.Errorf("期望百分比 82.5，实际 %v", resp.Percentage)
	}
	if resp.Grade != "A" {
		t.Errorf("期望等级 A，实际 %s", resp.Grade)
	}
}

func TestResultService_Create_DefaultTotalMarks(t *testing.T) {
	svc, tr := setupResultService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedResultDeps(tr)

	marks := 66
	resp, err := svc.Create(context.Background(), admin, &dto.CreateResultRequest{
		StudentID: "s-1", SubjectID: "sub-1", ExamID: "e-1", MarksObtained: &marks,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.TotalMarks != 100 {
		t.Errorf("未传满分应取默认值 100，实际 %d", resp.TotalMarks)
	}
	if resp.Percentage == nil || *resp.Percentage != 66 {
		t.Errorf("期望百分比 66，实际 %v", resp.Percentage)
	}
	if resp.Grade != "C" {
		t.Errorf("期望等级 C，实际 %s", resp.Grade)
	}
}

func TestResultService_Create_Duplicate(t *testing.T) {
	svc, tr := setupResultService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedResultDeps(tr)

	marks := 50
	req := &dto.CreateResultRequest{
		StudentID: "s-1", SubjectID: "sub-1", ExamID: "e-1", MarksObtained: &marks, TotalMarks: 100,
	}
	if _, err := svc.Create(context.Background(), admin, req); err != nil {
		t.Fatalf("首次录入应成功: %v", err)
	}

	// 同学生同科目同考试重复录入
	if _, err := svc.Create(context.Background(), admin, req); !errors.Is(err, ErrResultExists) {
		t.Errorf("期望 ErrResultExists，实际: %v", err)
	}
}

func TestResultService_Create_ExamNotFound(t *testing.T) {
	svc, tr := setupResultService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "p1", StudentNo: "S1", CourseID: "c-1"}
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1"}

	marks := 50
	_, err := svc.Create(context.Background(), admin, &dto.CreateResultRequest{
		StudentID: "s-1", SubjectID: "sub-1", ExamID: "no-such", MarksObtained: &marks,
	})
	if !errors.Is(err, ErrExamNotFound) {
		t.Errorf("期望 ErrExamNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestResultService_Update_RecalculatesPercentage(t *testing.T) {
	svc, tr := setupResultService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedResultDeps(tr)

	marks := 30
	created, err := svc.Create(context.Background(), admin, &dto.CreateResultRequest{
		StudentID: "s-1", SubjectID: "sub-1", ExamID: "e-1", MarksObtained: &marks, TotalMarks: 100,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if created.Grade != "F" {
		t.Fatalf("30/100 应为 F，实际 %s", created.Grade)
	}

	// 改分后百分比与等级重算
	newMarks := 85
	resp, err := svc.Update(context.Background(), admin, created.ID, &dto.UpdateResultRequest{MarksObtained: &newMarks})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Percentage == nil || *resp.Percentage != 85 {
		t.Errorf("期望百分比重算为 85，实际 %v", resp.Percentage)
	}
	if resp.Grade != "A" {
		t.Errorf("期望等级 A，实际 %s", resp.Grade)
	}
}

// ── Delete 测试 ──

func TestResultService_Delete_NotFound(t *testing.T) {
	svc, tr := setupResultService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	if err := svc.Delete(context.Background(), admin, "no-such"); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("期望 ErrResultNotFound，实际: %v", err)
	}
}
