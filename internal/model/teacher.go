package model

import "time"

// Teacher 教师表 — 对应 teachers
// 档案角色必须为 teacher（服务层校验）。
type Teacher struct {
	TeacherID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	ProfileID      string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"profile_id"`
	EmployeeID     string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"employee_id"`
	Qualification  string     `gorm:"type:varchar(200)"                              json:"qualification,omitempty"`
	Specialization string     `gorm:"type:varchar(100)"                              json:"specialization,omitempty"`
	JoiningDate    *time.Time `gorm:"type:date"                                      json:"joining_date,omitempty"`
	Department     string     `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	BaseModel

	// 关联
	Profile *Profile `gorm:"foreignKey:ProfileID;references:ProfileID" json:"profile,omitempty"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// TeacherSubject 教师授课关联表 — 对应 teacher_subjects
// (teacher, subject, course) 唯一
type TeacherSubject struct {
	TeacherSubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"teacher_subject_id"`
	TeacherID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_teacher_subject" json:"teacher_id"`
	SubjectID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_teacher_subject" json:"subject_id"`
	CourseID         string `gorm:"type:uuid;not null;uniqueIndex:uniq_teacher_subject" json:"course_id"`
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName 指定表名
func (TeacherSubject) TableName() string { return "teacher_subjects" }
