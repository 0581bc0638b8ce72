package model

// Course 课程（班级）表 — 对应 courses
type Course struct {
	CourseID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name           string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Code           string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Semester       int     `gorm:"type:smallint;not null"                         json:"semester"` // 1-8
	Section        string  `gorm:"type:varchar(10)"                               json:"section,omitempty"`
	Capacity       int     `gorm:"not null;default:50"                            json:"capacity"`
	ClassTeacherID *string `gorm:"type:uuid"                                      json:"class_teacher_id,omitempty"` // 删除教师时置 NULL
	Description    string  `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel

	// 关联
	ClassTeacher *Teacher `gorm:"foreignKey:ClassTeacherID;references:TeacherID" json:"class_teacher,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseSubject 课程-科目关联表 — 对应 course_subjects
// (course, subject) 唯一
type CourseSubject struct {
	CourseSubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"course_subject_id"`
	CourseID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_course_subject" json:"course_id"`
	SubjectID       string `gorm:"type:uuid;not null;uniqueIndex:uniq_course_subject" json:"subject_id"`
	Semester        int    `gorm:"type:smallint;not null"                             json:"semester"`
	BaseModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"    json:"course,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (CourseSubject) TableName() string { return "course_subjects" }
