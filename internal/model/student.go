package model

import "time"

// ── 学生枚举 ──

// StudentStatus 学籍状态
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentGraduated StudentStatus = "graduated"
	StudentDropped   StudentStatus = "dropped"
)

// Gender 性别
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Student 学生表 — 对应 students
// 档案角色必须为 student（服务层校验）。
// course 外键为 RESTRICT：课程下仍有学生时禁止删除课程。
// parent 外键为 SET NULL：删除家长不影响学生。
type Student struct {
	StudentID     string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	ProfileID     string        `gorm:"type:uuid;not null;uniqueIndex"                 json:"profile_id"`
	StudentNo     string        `gorm:"type:varchar(50);not null;uniqueIndex"          json:"student_no"`
	RollNumber    string        `gorm:"type:varchar(20);not null;uniqueIndex"          json:"roll_number"`
	CourseID      string        `gorm:"type:uuid;not null"                             json:"course_id"`
	Gender        Gender        `gorm:"type:varchar(10);not null;default:'male'"       json:"gender"`
	DateOfBirth   *time.Time    `gorm:"type:date"                                      json:"date_of_birth,omitempty"`
	Address       string        `gorm:"type:text"                                      json:"address,omitempty"`
	City          string        `gorm:"type:varchar(50)"                               json:"city,omitempty"`
	State         string        `gorm:"type:varchar(50)"                               json:"state,omitempty"`
	PinCode       string        `gorm:"type:varchar(10)"                               json:"pin_code,omitempty"`
	ParentID      *string       `gorm:"type:uuid"                                      json:"parent_id,omitempty"`
	AdmissionDate *time.Time    `gorm:"type:date"                                      json:"admission_date,omitempty"`
	Status        StudentStatus `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	BaseModel

	// 关联
	Profile *Profile `gorm:"foreignKey:ProfileID;references:ProfileID" json:"profile,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
	Parent  *Parent  `gorm:"foreignKey:ParentID;references:ParentID"   json:"parent,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
