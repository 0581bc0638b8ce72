package dto

// ── 考试模块 DTO ──

// CreateExamRequest 创建考试请求
type CreateExamRequest struct {
	SubjectID  string `json:"subject_id"  binding:"required,uuid"`
	CourseID   string `json:"course_id"   binding:"required,uuid"`
	ExamName   string `json:"exam_name"   binding:"required,max=100"`
	ExamType   string `json:"exam_type"   binding:"required,oneof=midterm final quiz practical"`
	ExamDate   string `json:"exam_date"   binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time"  binding:"omitempty,datetime=15:04"`
	EndTime    string `json:"end_time"    binding:"omitempty,datetime=15:04"`
	Duration   *int   `json:"duration"    binding:"omitempty,min=1"`
	TotalMarks int    `json:"total_marks" binding:"omitempty,min=1"`
	Room       string `json:"room"        binding:"omitempty,max=50"`
}

// UpdateExamRequest 更新考试请求
type UpdateExamRequest struct {
	ExamName   *string `json:"exam_name"   binding:"omitempty,max=100"`
	ExamDate   *string `json:"exam_date"   binding:"omitempty,datetime=2006-01-02"`
	StartTime  *string `json:"start_time"  binding:"omitempty,datetime=15:04"`
	EndTime    *string `json:"end_time"    binding:"omitempty,datetime=15:04"`
	Duration   *int    `json:"duration"    binding:"omitempty,min=1"`
	TotalMarks *int    `json:"total_marks" binding:"omitempty,min=1"`
	Room       *string `json:"room"        binding:"omitempty,max=50"`
}

// ExamResponse 考试响应
type ExamResponse struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name,omitempty"`
	ExamName    string `json:"exam_name"`
	ExamType    string `json:"exam_type"`
	ExamDate    string `json:"exam_date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Duration    *int   `json:"duration,omitempty"`
	TotalMarks  int    `json:"total_marks"`
	Room        string `json:"room,omitempty"`
	CreatedAt   string `json:"created_at"`
}
