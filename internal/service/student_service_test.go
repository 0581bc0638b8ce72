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

func setupStudentService() (StudentService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewStudentService(repo, authz, logger)
	return svc, tr
}

// ── Create 测试 ──

func TestStudentService_Create(t *testing.T) {
	svc, tr := setupStudentService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.seedActor("stu-account", model.RoleStudent)
	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}

	resp, err := svc.Create(context.Background(), admin, &dto.CreateStudentRequest{
		ProfileID:   "profile-stu-account",
		StudentNo:   "S2026001",
		RollNumber:  "01",
		CourseID:    "c-1",
		Gender:      "female",
		DateOfBirth: "2008-05-20",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Status != string(model.StudentActive) {
		t.Errorf("新建学生状态应为 active，实际 %s", resp.Status)
	}
	if resp.DateOfBirth != "2008-05-20" {
		t.Errorf("出生日期应回显 2008-05-20，实际 %s", resp.DateOfBirth)
	}
}

func TestStudentService_Create_DuplicateStudentNo(t *testing.T) {
	svc, tr := setupStudentService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.seedActor("stu-a", model.RoleStudent)
	tr.seedActor("stu-b", model.RoleStudent)
	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}

	first := &dto.CreateStudentRequest{
		ProfileID: "profile-stu-a", StudentNo: "S001", RollNumber: "01", CourseID: "c-1", Gender: "male",
	}
	if _, err := svc.Create(context.Background(), admin, first); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	second := &dto.CreateStudentRequest{
		ProfileID: "profile-stu-b", StudentNo: "S001", RollNumber: "02", CourseID: "c-1", Gender: "male",
	}
	if _, err := svc.Create(context.Background(), admin, second); !errors.Is(err, ErrStudentNoExists) {
		t.Errorf("期望 ErrStudentNoExists，实际: %v", err)
	}
}

func TestStudentService_Create_ProfileRoleMismatch(t *testing.T) {
	svc, tr := setupStudentService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.seedActor("teacher-u", model.RoleTeacher)
	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}

	// 档案角色是 teacher，不能建学生
	_, err := svc.Create(context.Background(), admin, &dto.CreateStudentRequest{
		ProfileID: "profile-teacher-u", StudentNo: "S001", RollNumber: "01", CourseID: "c-1", Gender: "male",
	})
	if !errors.Is(err, ErrProfileRoleMismatch) {
		t.Errorf("期望 ErrProfileRoleMismatch，实际: %v", err)
	}
}

func TestStudentService_Create_CourseNotFound(t *testing.T) {
	svc, tr := setupStudentService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	tr.seedActor("stu-a", model.RoleStudent)

	_, err := svc.Create(context.Background(), admin, &dto.CreateStudentRequest{
		ProfileID: "profile-stu-a", StudentNo: "S001", RollNumber: "01", CourseID: "no-such", Gender: "male",
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── List 行级过滤测试 ──

func TestStudentService_List_ScopeFiltered(t *testing.T) {
	svc, tr := setupStudentService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)
	teacherU := tr.seedActor("teacher-u", model.RoleTeacher)
	studentU := tr.seedActor("student-u", model.RoleStudent)

	tr.teacher.teachers["t-1"] = &model.Teacher{TeacherID: "t-1", ProfileID: "profile-teacher-u", EmployeeID: "E001"}
	tr.student.courseTeachers["c-1"] = "t-1"

	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "profile-student-u", StudentNo: "S1", CourseID: "c-1"}
	tr.student.students["s-2"] = &model.Student{StudentID: "s-2", ProfileID: "p2", StudentNo: "S2", CourseID: "c-1"}
	tr.student.students["s-3"] = &model.Student{StudentID: "s-3", ProfileID: "p3", StudentNo: "S3", CourseID: "c-other"}

	page := &dto.PaginationRequest{Page: 1, PageSize: 20}

	list, total, err := svc.List(context.Background(), admin, page)
	if err != nil || total != 3 {
		t.Errorf("管理员应见全部 3 人，实际 %d / %v", total, err)
	}
	_ = list

	_, total, err = svc.List(context.Background(), teacherU, page)
	if err != nil || total != 2 {
		t.Errorf("班主任应只见本班 2 人，实际 %d / %v", total, err)
	}

	list, total, err = svc.List(context.Background(), studentU, page)
	if err != nil || total != 1 {
		t.Fatalf("学生应只见本人，实际 %d / %v", total, err)
	}
	if list[0].ID != "s-1" {
		t.Errorf("学生应只见 s-1，实际 %s", list[0].ID)
	}
}

// ── Update 测试 ──

func TestStudentService_Update_BySelf(t *testing.T) {
	svc, tr := setupStudentService()
	studentU := tr.seedActor("student-u", model.RoleStudent)
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "profile-student-u", StudentNo: "S1", CourseID: "c-1"}

	addr := "新地址 100 号"
	resp, err := svc.Update(context.Background(), studentU, "s-1", &dto.UpdateStudentRequest{Address: &addr})
	if err != nil {
		t.Fatalf("学生更新本人应成功: %v", err)
	}
	if resp.Address != addr {
		t.Errorf("地址应更新，实际 %s", resp.Address)
	}
}

// ── Delete 测试 ──

func TestStudentService_Delete_NotFound(t *testing.T) {
	svc, tr := setupStudentService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	if err := svc.Delete(context.Background(), admin, "no-such"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}
