package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/store"
	"github.com/MKhiriev/go-student-registry/internal/validators"
	"github.com/MKhiriev/go-student-registry/models"
)

type studentService struct {
	students  store.StudentRepository
	validator validators.Validator

	logger *logger.Logger
}

// NewStudentService returns a StudentService backed by the student
// repository of storages. Input of Create and Update is validated by
// [StudentValidationService]; CSV rows are validated here.
func NewStudentService(storages *store.Storages, logger *logger.Logger) StudentService {
	return &studentService{
		students:  storages.StudentRepository,
		validator: validators.NewStudentValidator(),
		logger:    logger,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	created, err := s.students.CreateStudent(ctx, student)
	if err != nil {
		return models.Student{}, fmt.Errorf("student creation failed: %w", err)
	}

	return created, nil
}

func (s *studentService) ListStudents(ctx context.Context, faculty string) ([]models.Student, error) {
	students, err := s.students.ListStudents(ctx, models.StudentFilter{Faculty: faculty})
	if err != nil {
		return nil, fmt.Errorf("student listing failed: %w", err)
	}

	return students, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error) {
	updated, err := s.students.UpdateStudent(ctx, update)
	if err != nil {
		return models.Student{}, fmt.Errorf("student update failed: %w", err)
	}

	return updated, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, studentID int64) error {
	if err := s.students.DeleteStudent(ctx, studentID); err != nil {
		return fmt.Errorf("student deletion failed: %w", err)
	}

	return nil
}

func (s *studentService) ListCourses(ctx context.Context) ([]string, error) {
	courses, err := s.students.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("course listing failed: %w", err)
	}

	return courses, nil
}

// FacultyMean returns store.ErrStudentNotFound when the faculty has no students.
func (s *studentService) FacultyMean(ctx context.Context, faculty string) (models.FacultyMean, error) {
	mean, err := s.students.FacultyMean(ctx, faculty)
	if err != nil {
		return models.FacultyMean{}, fmt.Errorf("faculty mean calculation failed: %w", err)
	}

	return models.FacultyMean{Faculty: faculty, Mean: mean}, nil
}

func (s *studentService) LowResults(ctx context.Context, course string, below int) ([]models.Student, error) {
	students, err := s.students.ListStudents(ctx, models.StudentFilter{
		Course:      course,
		ResultBelow: models.Some(below),
	})
	if err != nil {
		return nil, fmt.Errorf("low results listing failed: %w", err)
	}

	return students, nil
}

// ImportCSV parses the whole document before writing anything; one bad row
// rejects the file with ErrInvalidCSV.
func (s *studentService) ImportCSV(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	log := logger.FromContext(ctx)

	students, err := parseStudentsCSV(r)
	if err != nil {
		log.Warn().Err(err).Str("func", "studentService.ImportCSV").Msg("CSV parsing failed")
		return models.ImportResult{}, err
	}

	for i, student := range students {
		if err = s.validator.Validate(ctx, student); err != nil {
			log.Warn().Err(err).Str("func", "studentService.ImportCSV").Int("row", i+1).Msg("invalid CSV row")
			return models.ImportResult{}, fmt.Errorf("%w: row %d: %w", ErrInvalidCSV, i+1, err)
		}
	}

	if len(students) == 0 {
		return models.ImportResult{}, nil
	}

	imported, err := s.students.CreateStudents(ctx, students)
	if err != nil {
		log.Err(err).Str("func", "studentService.ImportCSV").Msg("CSV import failed")
		return models.ImportResult{}, fmt.Errorf("CSV import failed: %w", err)
	}

	log.Info().Str("func", "studentService.ImportCSV").Int("imported", imported).Msg("CSV imported")
	return models.ImportResult{Imported: imported}, nil
}
