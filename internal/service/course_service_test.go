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

func setupCourseService() (CourseService, *testRepos) {
	repo, tr := newTestRepos()
	logger := zap.NewNop()
	authz := NewAuthzService(repo, logger)
	svc := NewCourseService(repo, authz, logger)
	return svc, tr
}

// ── Create 测试 ──

func TestCourseService_Create(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	resp, err := svc.Create(context.Background(), admin, &dto.CreateCourseRequest{
		Name:     "计算机科学一班",
		Code:     "CS-101",
		Semester: 3,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Capacity != 50 {
		t.Errorf("未传容量应取默认值 50，实际 %d", resp.Capacity)
	}
	if resp.Code != "CS-101" {
		t.Errorf("期望编码 CS-101，实际 %s", resp.Code)
	}
}

func TestCourseService_Create_DuplicateCode(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	req := &dto.CreateCourseRequest{Name: "一班", Code: "CS-101", Semester: 1}
	if _, err := svc.Create(context.Background(), admin, req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, req); !errors.Is(err, ErrCourseCodeExists) {
		t.Errorf("期望 ErrCourseCodeExists，实际: %v", err)
	}
}

func TestCourseService_Create_MissingClassTeacher(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	ghost := "no-such-teacher"
	_, err := svc.Create(context.Background(), admin, &dto.CreateCourseRequest{
		Name: "一班", Code: "CS-101", Semester: 1, ClassTeacherID: &ghost,
	})
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

func TestCourseService_Create_DeniedForNonAdmin(t *testing.T) {
	svc, tr := setupCourseService()
	teacher := tr.seedActor("teacher-u", model.RoleTeacher)

	_, err := svc.Create(context.Background(), teacher, &dto.CreateCourseRequest{
		Name: "一班", Code: "CS-101", Semester: 1,
	})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("非管理员创建课程应拒绝，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestCourseService_Delete_BlockedByStudents(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}
	tr.student.students["s-1"] = &model.Student{StudentID: "s-1", ProfileID: "p1", StudentNo: "S1", CourseID: "c-1"}

	if err := svc.Delete(context.Background(), admin, "c-1"); !errors.Is(err, ErrCourseHasStudents) {
		t.Errorf("课程下有学生应拒绝删除，实际: %v", err)
	}

	delete(tr.student.students, "s-1")
	if err := svc.Delete(context.Background(), admin, "c-1"); err != nil {
		t.Errorf("学生清空后删除应成功: %v", err)
	}
	if _, ok := tr.course.courses["c-1"]; ok {
		t.Error("删除后课程不应仍在仓储中")
	}
}

func TestCourseService_Delete_NotFound(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	if err := svc.Delete(context.Background(), admin, "no-such"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── 课程-科目关联测试 ──

func TestCourseService_AddSubject(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1", Credits: 4}

	req := &dto.AddCourseSubjectRequest{SubjectID: "sub-1", Semester: 1}
	resp, err := svc.AddSubject(context.Background(), admin, "c-1", req)
	if err != nil {
		t.Fatalf("AddSubject 应成功: %v", err)
	}
	if resp.SubjectName != "数学" || resp.SubjectCode != "MATH-1" {
		t.Errorf("响应应携带科目信息，实际 %+v", resp)
	}

	// 重复挂载
	if _, err := svc.AddSubject(context.Background(), admin, "c-1", req); !errors.Is(err, ErrCourseSubjectExists) {
		t.Errorf("期望 ErrCourseSubjectExists，实际: %v", err)
	}

	// 科目不存在
	ghost := &dto.AddCourseSubjectRequest{SubjectID: "no-such", Semester: 1}
	if _, err := svc.AddSubject(context.Background(), admin, "c-1", ghost); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}

func TestCourseService_RemoveSubject(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1}
	tr.subject.subjects["sub-1"] = &model.Subject{SubjectID: "sub-1", Name: "数学", Code: "MATH-1"}
	if _, err := svc.AddSubject(context.Background(), admin, "c-1", &dto.AddCourseSubjectRequest{SubjectID: "sub-1", Semester: 1}); err != nil {
		t.Fatalf("AddSubject 应成功: %v", err)
	}

	if err := svc.RemoveSubject(context.Background(), admin, "c-1", "sub-1"); err != nil {
		t.Fatalf("RemoveSubject 应成功: %v", err)
	}
	list, err := svc.ListSubjects(context.Background(), admin, "c-1")
	if err != nil {
		t.Fatalf("ListSubjects 应成功: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("移除后关联应为空，实际 %d", len(list))
	}
}

// ── Update 测试 ──

func TestCourseService_Update_ClearClassTeacher(t *testing.T) {
	svc, tr := setupCourseService()
	admin := tr.seedActor("admin-001", model.RoleAdmin)

	tr.teacher.teachers["t-1"] = &model.Teacher{TeacherID: "t-1", ProfileID: "pt-1", EmployeeID: "E001"}
	tid := "t-1"
	tr.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "一班", Code: "CS-101", Semester: 1, ClassTeacherID: &tid}

	// 传空串表示解除班主任
	empty := ""
	resp, err := svc.Update(context.Background(), admin, "c-1", &dto.UpdateCourseRequest{ClassTeacherID: &empty})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.ClassTeacherID != "" {
		t.Errorf("班主任应已清空，实际 %s", resp.ClassTeacherID)
	}
}
