package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-student-registry/internal/validators"
	"github.com/MKhiriev/go-student-registry/models"
)

// StudentValidationService rejects malformed input with
// ErrInvalidDataProvided before it reaches the wrapped StudentService.
type StudentValidationService struct {
	inner     StudentService
	validator validators.Validator
}

func NewStudentValidationService() StudentServiceWrapper {
	return &StudentValidationService{
		validator: validators.NewStudentValidator(),
	}
}

func (v *StudentValidationService) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	if err := v.validator.Validate(ctx, student); err != nil {
		return models.Student{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateStudent(ctx, student)
}

func (v *StudentValidationService) ListStudents(ctx context.Context, faculty string) ([]models.Student, error) {
	return v.inner.ListStudents(ctx, faculty)
}

func (v *StudentValidationService) UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Student{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateStudent(ctx, update)
}

func (v *StudentValidationService) DeleteStudent(ctx context.Context, studentID int64) error {
	if err := v.validator.Validate(ctx, models.Student{ID: studentID}, validators.FieldStudentID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DeleteStudent(ctx, studentID)
}

func (v *StudentValidationService) ListCourses(ctx context.Context) ([]string, error) {
	return v.inner.ListCourses(ctx)
}

func (v *StudentValidationService) FacultyMean(ctx context.Context, faculty string) (models.FacultyMean, error) {
	if err := v.validator.Validate(ctx, models.Student{Faculty: faculty}, validators.FieldFaculty); err != nil {
		return models.FacultyMean{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.FacultyMean(ctx, strings.TrimSpace(faculty))
}

func (v *StudentValidationService) LowResults(ctx context.Context, course string, below int) ([]models.Student, error) {
	if err := v.validator.Validate(ctx, models.Student{Course: course}, validators.FieldCourse); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.LowResults(ctx, strings.TrimSpace(course), below)
}

func (v *StudentValidationService) ImportCSV(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	if r == nil {
		return models.ImportResult{}, fmt.Errorf("%w: empty body", ErrInvalidDataProvided)
	}

	return v.inner.ImportCSV(ctx, r)
}

func (v *StudentValidationService) Wrap(wrapper StudentService) StudentService {
	v.inner = wrapper
	return v
}
