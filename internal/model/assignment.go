package model

import "time"

// SubmissionStatus 作业提交状态
type SubmissionStatus string

const (
	SubmissionSubmitted    SubmissionStatus = "submitted"
	SubmissionPending      SubmissionStatus = "pending"
	SubmissionLate         SubmissionStatus = "late"
	SubmissionNotSubmitted SubmissionStatus = "not_submitted"
)

// Assignment 作业表 — 对应 assignments
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	SubjectID    string    `gorm:"type:uuid;not null"                             json:"subject_id"`
	TeacherID    string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string    `gorm:"type:text"                                      json:"description,omitempty"`
	DueDate      time.Time `gorm:"not null"                                       json:"due_date"`
	TotalMarks   int       `gorm:"not null;default:100"                           json:"total_marks"`
	BaseModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// AssignmentSubmission 作业提交表 — 对应 assignment_submissions
// (assignment, student) 唯一
type AssignmentSubmission struct {
	SubmissionID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	AssignmentID   string           `gorm:"type:uuid;not null;uniqueIndex:uniq_submission" json:"assignment_id"`
	StudentID      string           `gorm:"type:uuid;not null;uniqueIndex:uniq_submission" json:"student_id"`
	SubmissionDate *time.Time       `json:"submission_date,omitempty"`
	Marks          *int             `json:"marks,omitempty"`
	Feedback       string           `gorm:"type:text"                                      json:"feedback,omitempty"`
	Status         SubmissionStatus `gorm:"type:varchar(15);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Assignment *Assignment `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"assignment,omitempty"`
	Student    *Student    `gorm:"foreignKey:StudentID;references:StudentID"       json:"student,omitempty"`
}

// TableName 指定表名
func (AssignmentSubmission) TableName() string { return "assignment_submissions" }
