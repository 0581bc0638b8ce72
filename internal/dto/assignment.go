package dto

// ── 作业模块 DTO ──

// CreateAssignmentRequest 布置作业请求
type CreateAssignmentRequest struct {
	SubjectID   string `json:"subject_id"  binding:"required,uuid"`
	TeacherID   string `json:"teacher_id"  binding:"required,uuid"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"    binding:"required"` // RFC3339
	TotalMarks  int    `json:"total_marks" binding:"omitempty,min=1"`
}

// UpdateAssignmentRequest 更新作业请求
type UpdateAssignmentRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	TotalMarks  *int    `json:"total_marks" binding:"omitempty,min=1"`
}

// AssignmentResponse 作业响应
type AssignmentResponse struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	TeacherID   string `json:"teacher_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date"`
	TotalMarks  int    `json:"total_marks"`
	CreatedAt   string `json:"created_at"`
}

// CreateSubmissionRequest 提交作业请求
type CreateSubmissionRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// GradeSubmissionRequest 批改提交请求
type GradeSubmissionRequest struct {
	Marks    int    `json:"marks"    binding:"min=0"`
	Feedback string `json:"feedback"`
}

// SubmissionResponse 作业提交响应
type SubmissionResponse struct {
	ID             string `json:"id"`
	AssignmentID   string `json:"assignment_id"`
	StudentID      string `json:"student_id"`
	SubmissionDate string `json:"submission_date,omitempty"`
	Marks          *int   `json:"marks,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	Status         string `json:"status"`
}
