package model

import "time"

// AttendanceStatus 考勤状态
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceLeave   AttendanceStatus = "leave"
)

// Attendance 考勤表 — 对应 attendances
// (student, subject, attendance_date) 唯一，由数据库唯一索引保证原子性：
// 两个并发写入者只有一个成功，另一个收到唯一键冲突。
type Attendance struct {
	AttendanceID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	StudentID      string           `gorm:"type:uuid;not null;uniqueIndex:uniq_attendance" json:"student_id"`
	SubjectID      string           `gorm:"type:uuid;not null;uniqueIndex:uniq_attendance" json:"subject_id"`
	AttendanceDate time.Time        `gorm:"type:date;not null;uniqueIndex:uniq_attendance" json:"attendance_date"`
	Status         AttendanceStatus `gorm:"type:varchar(10);not null;default:'absent'"     json:"status"`
	Remarks        string           `gorm:"type:text"                                      json:"remarks,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
