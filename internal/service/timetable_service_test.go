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

func setupTimetableService() (TimetableService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewTimetableService(repo, authz, logger)
	return svc, tr
}

func seedTimetableDeps(tr *testRepos) {
	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1"}
	tr.teacher.teachers["t-1"] = &model.Teacher{TeacherID: "t-1", ProfileID: "pt-1", EmployeeID: "E001"}
}

// ── Create 测试 ──

func TestTimetableService_Create(t *testing.T) {
	svc, tr := setupTimetableService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedTimetableDeps(tr)

	resp, err := svc.Create(context.Background(), admin, &dto.CreateTimetableRequest{
		CourseID: "c-1", DayOfWeek: "mon", StartTime: "08:00", EndTime: "08:45",
		SubjectID: "sub-1", TeacherID: "t-1", Room: "A203",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.DayOfWeek != "mon" || resp.Room != "A203" {
		t.Errorf("排课内容应回显，实际 %+v", resp)
	}
}

func TestTimetableService_Create_SlotConflict(t *testing.T) {
	svc, tr := setupTimetableService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedTimetableDeps(tr)
	tr.subject.subjects["sub-2"] = &model.Subject{SubjectID: "sub-2", Name: "物理", Code: "PHY-1"}

	first := &dto.CreateTimetableRequest{
		CourseID: "c-1", DayOfWeek: "mon", StartTime: "08:00", EndTime: "08:45",
		SubjectID: "sub-1", TeacherID: "t-1",
	}
	if _, err := svc.Create(context.Background(), admin, first); err != nil {
		t.Fatalf("首次排课应成功: %v", err)
	}

	// 同课程同星期同起始时间撞档
	conflict := &dto.CreateTimetableRequest{
		CourseID: "c-1", DayOfWeek: "mon", StartTime: "08:00", EndTime: "08:45",
		SubjectID: "sub-2", TeacherID: "t-1",
	}
	if _, err := svc.Create(context.Background(), admin, conflict); !errors.Is(err, ErrTimetableSlotUsed) {
		t.Errorf("期望 ErrTimetableSlotUsed，实际: %v", err)
	}
}

func TestTimetableService_Create_InvalidDayOfWeek(t *testing.T) {
	svc, tr := setupTimetableService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedTimetableDeps(tr)

	_, err := svc.Create(context.Background(), admin, &dto.CreateTimetableRequest{
		CourseID: "c-1", DayOfWeek: "someday", StartTime: "08:00", EndTime: "08:45",
		SubjectID: "sub-1", TeacherID: "t-1",
	})
	if !errors.Is(err, ErrInvalidDayOfWeek) {
		t.Errorf("期望 ErrInvalidDayOfWeek，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestTimetableService_Update_MoveSlot(t *testing.T) {
	svc, tr := setupTimetableService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedTimetableDeps(tr)

	created, err := svc.Create(context.Background(), admin, &dto.CreateTimetableRequest{
		CourseID: "c-1", DayOfWeek: "mon", StartTime: "08:00", EndTime: "08:45",
		SubjectID: "sub-1", TeacherID: "t-1",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	day := "wed"
	start := "10:00"
	end := "10:45"
	resp, err := svc.Update(context.Background(), admin, created.ID, &dto.UpdateTimetableRequest{
		DayOfWeek: &day, StartTime: &start, EndTime: &end,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.DayOfWeek != "wed" || resp.StartTime != "10:00" {
		t.Errorf("时段应已调整，实际 %+v", resp)
	}
}

// ── ListByCourse 测试 ──

func TestTimetableService_ListByCourse(t *testing.T) {
	svc, tr := setupTimetableService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	seedTimetableDeps(tr)

	days := []string{"mon", "tue", "wed"}
	for _, d := range days {
		if _, err := svc.Create(context.Background(), admin, &dto.CreateTimetableRequest{
			CourseID: "c-1", DayOfWeek: d, StartTime: "08:00", EndTime: "08:45",
			SubjectID: "sub-1", TeacherID: "t-1",
		}); err != nil {
			t.Fatalf("排课应成功: %v", err)
		}
	}

	list, err := svc.ListByCourse(context.Background(), admin, "c-1")
	if err != nil {
		t.Fatalf("ListByCourse 应成功: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("期望 3 条课表，实际 %d", len(list))
	}
}

// ── Delete 测试 ──

func TestTimetableService_Delete_NotFound(t *testing.T) {
	svc, tr := setupTimetableService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	if err := svc.Delete(context.Background(), admin, "no-such"); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("期望 ErrTimetableNotFound，实际: %v", err)
	}
}
