package dto

// ── 成绩模块 DTO ──

// CreateResultRequest 录入成绩请求
type CreateResultRequest struct {
	StudentID     string   `json:"student_id"     binding:"required,uuid"`
	SubjectID     string   `json:"subject_id"     binding:"required,uuid"`
	ExamID        string   `json:"exam_id"        binding:"required,uuid"`
	MarksObtained *int     `json:"marks_obtained" binding:"omitempty,min=0"`
	TotalMarks    int      `json:"total_marks"    binding:"omitempty,min=1"`
	Percentage    *float64 `json:"percentage"     binding:"omitempty,min=0,max=100"`
	Remarks       string   `json:"remarks"`
}

// UpdateResultRequest 更新成绩请求
type UpdateResultRequest struct {
	MarksObtained *int     `json:"marks_obtained" binding:"omitempty,min=0"`
	TotalMarks    *int     `json:"total_marks"    binding:"omitempty,min=1"`
	Percentage    *float64 `json:"percentage"     binding:"omitempty,min=0,max=100"`
	Remarks       *string  `json:"remarks"`
}

// ResultResponse 成绩响应
type ResultResponse struct {
	ID            string   `json:"id"`
	StudentID     string   `json:"student_id"`
	SubjectID     string   `json:"subject_id"`
	SubjectName   string   `json:"subject_name,omitempty"`
	ExamID        string   `json:"exam_id"`
	ExamName      string   `json:"exam_name,omitempty"`
	MarksObtained *int     `json:"marks_obtained,omitempty"`
	TotalMarks    int      `json:"total_marks"`
	Percentage    *float64 `json:"percentage,omitempty"`
	Grade         string   `json:"grade,omitempty"`
	Remarks       string   `json:"remarks,omitempty"`
	CreatedAt     string   `json:"created_at"`
}
