package handler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/core/domain"
	"github.com/schoolhub/portal/internal/core/ports"
)

// stubGateway implements ports.AuthGateway for handler tests.
type stubGateway struct {
	loginFn       func(ctx context.Context, username, password string) (ports.LoginResult, error)
	registerFn    func(ctx context.Context, p ports.RegisterPayload) (ports.RegisterResult, error)
	accountTypeFn func(ctx context.Context, username string) (string, error)
}

func (g *stubGateway) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	if g.loginFn == nil {
		return ports.LoginResult{}, nil
	}
	return g.loginFn(ctx, username, password)
}

func (g *stubGateway) Register(ctx context.Context, p ports.RegisterPayload) (ports.RegisterResult, error) {
	if g.registerFn == nil {
		return ports.RegisterResult{}, nil
	}
	return g.registerFn(ctx, p)
}

func (g *stubGateway) AccountType(ctx context.Context, username string) (string, error) {
	if g.accountTypeFn == nil {
		return "", domain.ErrBackendUnavailable
	}
	return g.accountTypeFn(ctx, username)
}

// stubSessions implements ports.SessionService for handler tests.
type stubSessions struct {
	loginFn   func(ctx context.Context, username, password string) (string, domain.Session, error)
	resolveFn func(ctx context.Context, cookie string) (string, domain.Session, error)
	logoutFn  func(ctx context.Context, sid string) error
}

func (s *stubSessions) Login(ctx context.Context, username, password string) (string, domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessions) Resolve(ctx context.Context, cookie string) (string, domain.Session, error) {
	if s.resolveFn == nil {
		return "", domain.Session{}, domain.ErrSessionNotFound
	}
	return s.resolveFn(ctx, cookie)
}

func (s *stubSessions) Logout(ctx context.Context, sid string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, sid)
}

// stubSchool implements ports.SchoolClient. Only the function fields a test
// sets are exercised; everything else returns its zero value.
type stubSchool struct {
	listStudentsFn      func(ctx context.Context) ([]domain.Student, error)
	getStudentFn        func(ctx context.Context, id int64) (domain.Student, error)
	updateStudentFn     func(ctx context.Context, id int64, s domain.Student) (domain.Student, error)
	studentImageFn      func(ctx context.Context, id int64) (ports.Image, error)
	parentImageFn       func(ctx context.Context, id int64) (ports.Image, error)
	listParentsFn       func(ctx context.Context) ([]domain.Parent, error)
	getParentFn         func(ctx context.Context, id int64) (domain.Parent, error)
	listTeachersFn      func(ctx context.Context) ([]domain.Teacher, error)
	teacherSubjectsFn   func(ctx context.Context, teacherID int64) ([]domain.Subject, error)
	teachersBySubjectFn func(ctx context.Context, name string) ([]domain.Teacher, error)
	listSubjectsFn      func(ctx context.Context) ([]domain.Subject, error)
	createSubjectFn     func(ctx context.Context, name string) (domain.Subject, error)
}

func (s *stubSchool) ListStudents(ctx context.Context) ([]domain.Student, error) {
	if s.listStudentsFn == nil {
		return nil, nil
	}
	return s.listStudentsFn(ctx)
}

func (s *stubSchool) GetStudent(ctx context.Context, id int64) (domain.Student, error) {
	if s.getStudentFn == nil {
		return domain.Student{}, domain.ErrNotFound
	}
	return s.getStudentFn(ctx, id)
}

func (s *stubSchool) StudentImage(ctx context.Context, id int64) (ports.Image, error) {
	if s.studentImageFn == nil {
		return ports.Image{}, domain.ErrNotFound
	}
	return s.studentImageFn(ctx, id)
}

func (s *stubSchool) UpdateStudent(ctx context.Context, id int64, st domain.Student) (domain.Student, error) {
	if s.updateStudentFn == nil {
		return st, nil
	}
	return s.updateStudentFn(ctx, id, st)
}

func (s *stubSchool) UpdateStudentImage(context.Context, int64, ports.Image) error { return nil }

func (s *stubSchool) AddParents(context.Context, int64, []int64) error { return nil }

func (s *stubSchool) ListParents(ctx context.Context) ([]domain.Parent, error) {
	if s.listParentsFn == nil {
		return nil, nil
	}
	return s.listParentsFn(ctx)
}

func (s *stubSchool) GetParent(ctx context.Context, id int64) (domain.Parent, error) {
	if s.getParentFn == nil {
		return domain.Parent{}, domain.ErrNotFound
	}
	return s.getParentFn(ctx, id)
}

func (s *stubSchool) ParentImage(ctx context.Context, id int64) (ports.Image, error) {
	if s.parentImageFn == nil {
		return ports.Image{}, domain.ErrNotFound
	}
	return s.parentImageFn(ctx, id)
}

func (s *stubSchool) UpdateParent(ctx context.Context, id int64, p domain.Parent) (domain.Parent, error) {
	return p, nil
}

func (s *stubSchool) UploadParentImage(context.Context, int64, ports.Image) error { return nil }

func (s *stubSchool) AddStudents(context.Context, int64, []int64) error { return nil }

func (s *stubSchool) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	if s.listTeachersFn == nil {
		return nil, nil
	}
	return s.listTeachersFn(ctx)
}

func (s *stubSchool) TeachersBySubject(ctx context.Context, name string) ([]domain.Teacher, error) {
	if s.teachersBySubjectFn == nil {
		return nil, nil
	}
	return s.teachersBySubjectFn(ctx, name)
}

func (s *stubSchool) TeacherSubjects(ctx context.Context, teacherID int64) ([]domain.Subject, error) {
	if s.teacherSubjectsFn == nil {
		return nil, nil
	}
	return s.teacherSubjectsFn(ctx, teacherID)
}

func (s *stubSchool) AssignSubject(context.Context, int64, int64) error { return nil }

func (s *stubSchool) RemoveSubject(context.Context, int64, int64) error { return nil }

func (s *stubSchool) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	if s.listSubjectsFn == nil {
		return nil, nil
	}
	return s.listSubjectsFn(ctx)
}

func (s *stubSchool) CreateSubject(ctx context.Context, name string) (domain.Subject, error) {
	if s.createSubjectFn == nil {
		return domain.Subject{Name: name}, nil
	}
	return s.createSubjectFn(ctx, name)
}

func (s *stubSchool) DeleteSubject(context.Context, int64) error { return nil }

// newTestShell builds a Shell whose account-type lookups succeed with role.
func newTestShell(role string) *Shell {
	gateway := &stubGateway{accountTypeFn: func(context.Context, string) (string, error) {
		return role, nil
	}}
	return NewShell(gateway, RouteTable(), "test", zerolog.Nop())
}
