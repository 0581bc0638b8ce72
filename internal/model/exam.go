package model

import "time"

// ExamType 考试类型
type ExamType string

const (
	ExamMidterm   ExamType = "midterm"
	ExamFinal     ExamType = "final"
	ExamQuiz      ExamType = "quiz"
	ExamPractical ExamType = "practical"
)

// Exam 考试表 — 对应 exams
type Exam struct {
	ExamID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	SubjectID  string    `gorm:"type:uuid;not null"                             json:"subject_id"`
	CourseID   string    `gorm:"type:uuid;not null"                             json:"course_id"`
	ExamName   string    `gorm:"type:varchar(100);not null"                     json:"exam_name"`
	ExamType   ExamType  `gorm:"type:varchar(10);not null;default:'final'"      json:"exam_type"`
	ExamDate   time.Time `gorm:"type:date;not null"                             json:"exam_date"`
	StartTime  string    `gorm:"type:varchar(5)"                                json:"start_time,omitempty"` // HH:MM
	EndTime    string    `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`
	Duration   *int      `json:"duration,omitempty"` // 分钟
	TotalMarks int       `gorm:"not null;default:100"                           json:"total_marks"`
	Room       string    `gorm:"type:varchar(50)"                               json:"room,omitempty"`
	BaseModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName 指定表名
func (Exam) TableName() string { return "exams" }
