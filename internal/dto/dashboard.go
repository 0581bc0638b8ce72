package dto

// ── 仪表盘 / 预测 DTO ──

// GenderBreakdown 学生性别分布
type GenderBreakdown struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
	Other  int64 `json:"other"`
}

// SubjectAverageResponse 科目平均百分比
type SubjectAverageResponse struct {
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	AvgPercent  float64 `json:"avg_percent"` // 两位小数，无成绩为 0.00
}

// AdminDashboardResponse 管理员仪表盘
type AdminDashboardResponse struct {
	TotalStudents          int64                    `json:"total_students"`
	TotalTeachers          int64                    `json:"total_teachers"`
	TotalCourses           int64                    `json:"total_courses"`
	TotalSubjects          int64                    `json:"total_subjects"`
	TotalResults           int64                    `json:"total_results"`
	TotalAssignments       int64                    `json:"total_assignments"`
	TotalAttendanceRecords int64                    `json:"total_attendance_records"`
	Gender                 GenderBreakdown          `json:"gender"`
	TeacherStudentRatio    float64                  `json:"teacher_student_ratio"` // 一位小数，无教师为 0
	PassCount              int64                    `json:"pass_count"`
	FailCount              int64                    `json:"fail_count"`
	SubjectAverages        []SubjectAverageResponse `json:"subject_averages"`
}

// TeacherDashboardResponse 教师仪表盘
type TeacherDashboardResponse struct {
	Courses            []CourseResponse     `json:"courses"`             // 任班主任的课程
	PendingAssignments []AssignmentResponse `json:"pending_assignments"` // 存在待批提交的作业
}

// StudentDashboardResponse 学生仪表盘
type StudentDashboardResponse struct {
	AttendancePercent   float64              `json:"attendance_percent"`
	Results             []ResultResponse     `json:"results"`
	UpcomingAssignments []AssignmentResponse `json:"upcoming_assignments"` // 按截止时间升序，最多 5 条
}

// ChildSummary 家长仪表盘中单个孩子的汇总
type ChildSummary struct {
	StudentID         string               `json:"student_id"`
	StudentNo         string               `json:"student_no"`
	Name              string               `json:"name,omitempty"`
	AttendancePercent float64              `json:"attendance_percent"`
	Results           []ResultResponse     `json:"results"`
	Assignments       []AssignmentResponse `json:"assignments"` // 孩子所在课程的作业
}

// ParentDashboardResponse 家长仪表盘
type ParentDashboardResponse struct {
	Children []ChildSummary `json:"children"`
}

// PredictionResponse 通过预测响应
type PredictionResponse struct {
	StudentID         string  `json:"student_id"`
	AttendancePercent float64 `json:"attendance_percent"`
	AverageMarks      float64 `json:"average_marks"`
	Outcome           string  `json:"outcome"` // Pass | Fail
}
