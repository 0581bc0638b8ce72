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

func setupAttendanceService() (AttendanceService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewAttendanceService(repo, authz, logger)
	return svc, tr
}

func seedAttendanceDeps(tr *testRepos) {
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "p1", StudentNo: "S1", CourseID: "c-1"}
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1"}
}

// ── Create 测试 ──

func TestAttendanceService_Create(t *testing.T) {
	svc, tr := setupAttendanceService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedAttendanceDeps(tr)

	resp, err := svc.Create(context.Background(), admin, &dto.CreateAttendanceRequest{
		StudentID:      "s-1",
		SubjectID:      "sub-1",
		AttendanceDate: "2026-03-02",
		Status:         "present",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.AttendanceDate != "2026-03-02" {
		t.Errorf("日期应回显 2026-03-02，实际 %s", resp.AttendanceDate)
	}
	if resp.Status != "present" {
		t.Errorf("期望状态 present，实际 %s", resp.Status)
	}
}

func TestAttendanceService_Create_Duplicate(t *testing.T) {
	svc, tr := setupAttendanceService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedAttendanceDeps(tr)

	req := &dto.CreateAttendanceRequest{
		StudentID: "s-1", SubjectID: "sub-1", AttendanceDate: "2026-03-02", Status: "present",
	}
	if _, err := svc.Create(context.Background(), admin, req); err != nil {
		t.Fatalf("首次录入应成功: %v", err)
	}

	// 同学生同科目同日期重复录入
	req.Status = "absent"
	if _, err := svc.Create(context.Background(), admin, req); !errors.Is(err, ErrAttendanceExists) {
		t.Errorf("期望 ErrAttendanceExists，实际: %v", err)
	}
}

func TestAttendanceService_Create_StudentNotFound(t *testing.T) {
	svc, tr := setupAttendanceService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1"}

	_, err := svc.Create(context.Background(), admin, &dto.CreateAttendanceRequest{
		StudentID: "no-such", SubjectID: "sub-1", AttendanceDate: "2026-03-02", Status: "present",
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestAttendanceService_Create_DeniedForNonAdmin(t *testing.T) {
	svc, tr := setupAttendanceService()
	teacher := tr.seedActor("teacher-u", model.RoleTeacher)
	seedAttendanceDeps(tr)

	_, err := svc.Create(context.Background(), teacher, &dto.CreateAttendanceRequest{
		StudentID: "s-1", SubjectID: "sub-1", AttendanceDate: "2026-03-02", Status: "present",
	})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("非管理员录入考勤应拒绝，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestAttendanceService_Update_Status(t *testing.T) {
	svc, tr := setupAttendanceService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedAttendanceDeps(tr)

	created, err := svc.Create(context.Background(), admin, &dto.CreateAttendanceRequest{
		StudentID: "s-1", SubjectID: "sub-1", AttendanceDate: "2026-03-02", Status: "absent",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 误记缺勤改为迟到
	late := "late"
	remarks := "公交晚点"
	resp, err := svc.Update(context.Background(), admin, created.ID, &dto.UpdateAttendanceRequest{
		Status: &late, Remarks: &remarks,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Status != "late" || resp.Remarks != "公交晚点" {
		t.Errorf("状态与备注应更新，实际 %+v", resp)
	}
}

// ── ListByStudent 测试 ──

func TestAttendanceService_ListByStudent(t *testing.T) {
	svc, tr := setupAttendanceService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedAttendance(tr, "s-1", 4, 2)
	seedAttendance(tr, "s-other", 3, 0)

	list, total, err := svc.ListByStudent(context.Background(), admin, "s-1", &dto.PaginationRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListByStudent 应成功: %v", err)
	}
	if total != 6 || len(list) != 6 {
		t.Errorf("期望 6 条记录，实际 total=%d len=%d", total, len(list))
	}
}

// ── Delete 测试 ──

func TestAttendanceService_Delete_NotFound(t *testing.T) {
	svc, tr := setupAttendanceService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	if err := svc.Delete(context.Background(), admin, "no-such"); !errors.Is(err, ErrAttendanceNotFound) {
		t.Errorf("期望 ErrAttendanceNotFound，实际: %v", err)
	}
}
