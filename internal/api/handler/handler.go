package handler

import (
	"sms-portal/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Subject    *SubjectHandler
	Teacher    *TeacherHandler
	Parent     *ParentHandler
	Student    *StudentHandler
	Attendance *AttendanceHandler
	Assignment *AssignmentHandler
	Exam       *ExamHandler
	Result     *ResultHandler
	Timetable  *TimetableHandler
	Dashboard  *DashboardHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Course:     NewCourseHandler(svc.Course),
		Subject:    NewSubjectHandler(svc.Subject),
		Teacher:    NewTeacherHandler(svc.Teacher),
		Parent:     NewParentHandler(svc.Parent),
		Student:    NewStudentHandler(svc.Student, svc.Prediction),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Exam:       NewExamHandler(svc.Exam),
		Result:     NewResultHandler(svc.Result),
		Timetable:  NewTimetableHandler(svc.Timetable),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Export:     NewExportHandler(svc.Export),
	}
}
