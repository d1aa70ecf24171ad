package ports

import (
	"context"

	"github.com/schoolhub/portal/internal/core/domain"
)

// Image is a fetched profile image: raw bytes plus the backend's content type.
type Image struct {
	Data        []byte
	ContentType string
}

// StudentDirectory covers the backend's student endpoints.
type StudentDirectory interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id int64) (domain.Student, error)
	StudentImage(ctx context.Context, id int64) (Image, error)
	UpdateStudent(ctx context.Context, id int64, s domain.Student) (domain.Student, error)
	UpdateStudentImage(ctx context.Context, id int64, img Image) error
	AddParents(ctx context.Context, studentID int64, parentIDs []int64) error
}

// ParentDirectory covers the backend's parent endpoints.
type ParentDirectory interface {
	ListParents(ctx context.Context) ([]domain.Parent, error)
	GetParent(ctx context.Context, id int64) (domain.Parent, error)
	ParentImage(ctx context.Context, id int64) (Image, error)
	UpdateParent(ctx context.Context, id int64, p domain.Parent) (domain.Parent, error)
	UploadParentImage(ctx context.Context, id int64, img Image) error
	AddStudents(ctx context.Context, parentID int64, studentIDs []int64) error
}

// TeacherDirectory covers the backend's teacher endpoints.
type TeacherDirectory interface {
	ListTeachers(ctx context.Context) ([]domain.Teacher, error)
	TeachersBySubject(ctx context.Context, subjectName string) ([]domain.Teacher, error)
	TeacherSubjects(ctx context.Context, teacherID int64) ([]domain.Subject, error)
	AssignSubject(ctx context.Context, teacherID, subjectID int64) error
	RemoveSubject(ctx context.Context, teacherID, subjectID int64) error
}

// SubjectCatalog covers the backend's subject endpoints.
type SubjectCatalog interface {
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
	CreateSubject(ctx context.Context, name string) (domain.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

// SchoolClient is the full backend surface a view may fetch from.
type SchoolClient interface {
	StudentDirectory
	ParentDirectory
	TeacherDirectory
	SubjectCatalog
}
