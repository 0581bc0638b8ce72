package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"sms-portal/backend/internal/model"
)

// ── 测试辅助 ──

func setupExportService() (ExportService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewExportService(repo, authz, logger)
	return svc, tr
}

// ── ExportRoster 测试 ──

func TestExportService_ExportRoster_Admin(t *testing.T) {
	svc, tr := setupExportService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "p1", StudentNo: "S1", RollNumber: "01", CourseID: "c-1", Gender: model.GenderMale, Status: model.StudentActive}
	tr.student.students["s-2"] = &model.Student{StudentID: "s-2", ProfileID: "p2", StudentNo: "S2", RollNumber: "02", CourseID: "c-1", Gender: model.GenderFemale, Status: model.StudentActive}

	buf, filename, err := svc.ExportRoster(context.Background(), admin)
	if err != nil {
		t.Fatalf("ExportRoster 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际 %s", filename)
	}
	// xlsx 是 zip 容器，魔数 PK
	head := buf.Bytes()[:2]
	if head[0] != 'P' || head[1] != 'K' {
		t.Errorf("导出内容应为 zip 格式，实际开头 %q", head)
	}
}

func TestExportService_ExportRoster_ClassTeacherScope(t *testing.T) {
	svc, tr := setupExportService()
	teacherU := tr.seedActor("teacher-u", model.RoleTeacher)

	tr.teacher.teachers["t-1"] = &model.Teacher{TeacherID: "t-1", ProfileID: "profile-teacher-u", EmployeeID: "E001"}
	tr.student.courseTeachers["c-1"] = "t-1"
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "p1", StudentNo: "S1", CourseID: "c-1", Status: model.StudentActive}
	tr.student.students["s-2"] = &model.Student{StudentID: "s-2", ProfileID: "p2", StudentNo: "S2", CourseID: "c-other", Status: model.StudentActive}

	buf, _, err := svc.ExportRoster(context.Background(), teacherU)
	if err != nil {
		t.Fatalf("班主任导出本班应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
}

func TestExportService_ExportRoster_DeniedForStudent(t *testing.T) {
	svc, tr := setupExportService()
	studentU := tr.seedActor("student-u", model.RoleStudent)
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "profile-student-u", StudentNo: "S1", CourseID: "c-1"}

	// 学生虽可列出本人，但批量导出不开放
	_, _, err := svc.ExportRoster(context.Background(), studentU)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("学生导出名册应拒绝，实际: %v", err)
	}
}

func TestExportService_ExportRoster_NoStudents(t *testing.T) {
	svc, tr := setupExportService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	_, _, err := svc.ExportRoster(context.Background(), admin)
	if !errors.Is(err, ErrExportNoStudents) {
		t.Errorf("期望 ErrExportNoStudents，实际: %v", err)
	}
}
