package dto

// ── 考勤模块 DTO ──

// CreateAttendanceRequest 录入考勤请求
type CreateAttendanceRequest struct {
	StudentID      string `json:"student_id"      binding:"required,uuid"`
	SubjectID      string `json:"subject_id"      binding:"required,uuid"`
	AttendanceDate string `json:"attendance_date" binding:"required,datetime=2006-01-02"`
	Status         string `json:"status"          binding:"required,oneof=present absent late leave"`
	Remarks        string `json:"remarks"`
}

// UpdateAttendanceRequest 更新考勤请求
type UpdateAttendanceRequest struct {
	Status  *string `json:"status"  binding:"omitempty,oneof=present absent late leave"`
	Remarks *string `json:"remarks"`
}

// AttendanceResponse 考勤响应
type AttendanceResponse struct {
	ID             string `json:"id"`
	StudentID      string `json:"student_id"`
	SubjectID      string `json:"subject_id"`
	SubjectName    string `json:"subject_name,omitempty"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
	Remarks        string `json:"remarks,omitempty"`
	CreatedAt      string `json:"created_at"`
}
