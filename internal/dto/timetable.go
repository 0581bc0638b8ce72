package dto

// ── 课表模块 DTO ──

// CreateTimetableRequest 排课请求
type CreateTimetableRequest struct {
	CourseID  string `json:"course_id"   binding:"required,uuid"`
	DayOfWeek string `json:"day_of_week" binding:"required,oneof=mon tue wed thu fri sat sun"`
	StartTime string `json:"start_time"  binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time"    binding:"required,datetime=15:04"`
	SubjectID string `json:"subject_id"  binding:"required,uuid"`
	TeacherID string `json:"teacher_id"  binding:"required,uuid"`
	Room      string `json:"room"        binding:"omitempty,max=50"`
}

// UpdateTimetableRequest 调整排课请求
type UpdateTimetableRequest struct {
	DayOfWeek *string `json:"day_of_week" binding:"omitempty,oneof=mon tue wed thu fri sat sun"`
	StartTime *string `json:"start_time"  binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time"    binding:"omitempty,datetime=15:04"`
	SubjectID *string `json:"subject_id"  binding:"omitempty,uuid"`
	TeacherID *string `json:"teacher_id"  binding:"omitempty,uuid"`
	Room      *string `json:"room"        binding:"omitempty,max=50"`
}

// TimetableResponse 课表条目响应
type TimetableResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name,omitempty"`
	DayOfWeek   string `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name,omitempty"`
	Room        string `json:"room,omitempty"`
}
