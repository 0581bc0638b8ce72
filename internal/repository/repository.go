package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Profile    ProfileRepository
	Course     CourseRepository
	Subject    SubjectRepository
	Teacher    TeacherRepository
	Parent     ParentRepository
	Student    StudentRepository
	Attendance AttendanceRepository
	Assignment AssignmentRepository
	Exam       ExamRepository
	Result     ResultRepository
	Timetable  TimetableRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Profile:    NewProfileRepo(db),
		Course:     NewCourseRepo(db),
		Subject:    NewSubjectRepo(db),
		Teacher:    NewTeacherRepo(db),
		Parent:     NewParentRepo(db),
		Student:    NewStudentRepo(db),
		Attendance: NewAttendanceRepo(db),
		Assignment: NewAssignmentRepo(db),
		Exam:       NewExamRepo(db),
		Result:     NewResultRepo(db),
		Timetable:  NewTimetableRepo(db),
	}
}
