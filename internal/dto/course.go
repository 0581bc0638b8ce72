package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name           string  `json:"name"             binding:"required,max=100"`
	Code           string  `json:"code"             binding:"required,max=50"`
	Semester       int     `json:"semester"         binding:"required,min=1,max=8"`
	Section        string  `json:"section"          binding:"omitempty,max=10"`
	Capacity       int     `json:"capacity"         binding:"omitempty,min=1"`
	ClassTeacherID *string `json:"class_teacher_id" binding:"omitempty,uuid"`
	Description    string  `json:"description"`
}

// UpdateCourseRequest 更新课程请求（指针字段区分"未传"与"清空"）
type UpdateCourseRequest struct {
	Name           *string `json:"name"             binding:"omitempty,max=100"`
	Semester       *int    `json:"semester"         binding:"omitempty,min=1,max=8"`
	Section        *string `json:"section"          binding:"omitempty,max=10"`
	Capacity       *int    `json:"capacity"         binding:"omitempty,min=1"`
	ClassTeacherID *string `json:"class_teacher_id" binding:"omitempty,uuid"`
	Description    *string `json:"description"`
}

// CourseResponse 课程响应
type CourseResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	Semester         int    `json:"semester"`
	Section          string `json:"section,omitempty"`
	Capacity         int    `json:"capacity"`
	ClassTeacherID   string `json:"class_teacher_id,omitempty"`
	ClassTeacherName string `json:"class_teacher_name,omitempty"`
	Description      string `json:"description,omitempty"`
	StudentCount     int64  `json:"student_count"`
	CreatedAt        string `json:"created_at"`
}

// AddCourseSubjectRequest 课程挂载科目请求
type AddCourseSubjectRequest struct {
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	Semester  int    `json:"semester"   binding:"required,min=1,max=8"`
}

// CourseSubjectResponse 课程-科目关联响应
type CourseSubjectResponse struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code"`
	Semester    int    `json:"semester"`
}
