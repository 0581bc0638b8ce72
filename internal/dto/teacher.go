package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
// profile_id 对应的档案角色必须已是 teacher。
type CreateTeacherRequest struct {
	ProfileID      string `json:"profile_id"     binding:"required,uuid"`
	EmployeeID     string `json:"employee_id"    binding:"required,max=50"`
	Qualification  string `json:"qualification"  binding:"omitempty,max=200"`
	Specialization string `json:"specialization" binding:"omitempty,max=100"`
	JoiningDate    string `json:"joining_date"   binding:"omitempty,datetime=2006-01-02"`
	Department     string `json:"department"     binding:"omitempty,max=100"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Qualification  *string `json:"qualification"  binding:"omitempty,max=200"`
	Specialization *string `json:"specialization" binding:"omitempty,max=100"`
	Department     *string `json:"department"     binding:"omitempty,max=100"`
}

// TeacherResponse 教师响应
type TeacherResponse struct {
	ID             string `json:"id"`
	ProfileID      string `json:"profile_id"`
	Username       string `json:"username,omitempty"`
	EmployeeID     string `json:"employee_id"`
	Qualification  string `json:"qualification,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	JoiningDate    string `json:"joining_date,omitempty"`
	Department     string `json:"department,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// AddTeacherSubjectRequest 教师授课安排请求
type AddTeacherSubjectRequest struct {
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
}

// TeacherSubjectResponse 教师授课安排响应
type TeacherSubjectResponse struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name"`
}
