package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/models"
)

// studentRepository is the SQL implementation of [StudentRepository] over
// the "students" table.
type studentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStudentRepository constructs a [StudentRepository].
func NewStudentRepository(db *DB, logger *logger.Logger) StudentRepository {
	logger.Debug().Msg("creating student repository")
	return &studentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *studentRepository) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	log := logger.FromContext(ctx)

	err := r.db.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		id, err := r.insertStudent(ctx, tx, student)
		student.ID = id
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*studentRepository.CreateStudent").Msg("error creating student")
		return models.Student{}, err
	}

	return student, nil
}

// CreateStudents inserts every student or none of them.
func (r *studentRepository) CreateStudents(ctx context.Context, students []models.Student) (int, error) {
	log := logger.FromContext(ctx)

	err := r.db.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for idx, student := range students {
			if _, err := r.insertStudent(ctx, tx, student); err != nil {
				return fmt.Errorf("failed to insert student at index %d: %w", idx, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*studentRepository.CreateStudents").
			Int("students_count", len(students)).
			Msg("error creating students")
		return 0, err
	}

	log.Info().
		Str("func", "*studentRepository.CreateStudents").
		Int("students_count", len(students)).
		Msg("students created")
	return len(students), nil
}

func (r *studentRepository) insertStudent(ctx context.Context, tx *sql.Tx, student models.Student) (int64, error) {
	query, args, err := r.db.queries.insertStudent(student)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return id, nil
}

func (r *studentRepository) ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectStudents(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*studentRepository.ListStudents").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var s models.Student
		if err = rows.Scan(&s.ID, &s.LastName, &s.FirstName, &s.Faculty, &s.Course, &s.Result); err != nil {
			log.Err(err).Str("func", "*studentRepository.ListStudents").Msg("failed to scan student row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		students = append(students, s)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*studentRepository.ListStudents").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return students, nil
}

// UpdateStudent writes the set fields and reads the row back in the same
// transaction. An update without fields only checks that the row exists.
func (r *studentRepository) UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error) {
	log := logger.FromContext(ctx)

	updateQuery, updateArgs, hasFields, err := r.db.queries.updateStudent(update)
	if err != nil {
		return models.Student{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	selectQuery, selectArgs, err := r.db.queries.selectStudent(update.ID)
	if err != nil {
		return models.Student{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var student models.Student
	err = r.db.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if hasFields {
			if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
		}

		err := tx.QueryRowContext(ctx, selectQuery, selectArgs...).
			Scan(&student.ID, &student.LastName, &student.FirstName, &student.Faculty, &student.Course, &student.Result)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrStudentNotFound
		case err != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrStudentNotFound) {
			log.Err(err).Str("func", "*studentRepository.UpdateStudent").Int64("student_id", update.ID).Msg("error updating student")
		}
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) DeleteStudent(ctx context.Context, studentID int64) error {
	query, args, err := r.db.queries.deleteStudent(studentID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleted, err := r.db.execAffected(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*studentRepository.DeleteStudent").Int64("student_id", studentID).Msg("error deleting student")
		return err
	}
	if deleted == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func (r *studentRepository) ListCourses(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectCourses()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*studentRepository.ListCourses").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	courses := make([]string, 0)
	for rows.Next() {
		var course string
		if err = rows.Scan(&course); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		courses = append(courses, course)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return courses, nil
}

func (r *studentRepository) FacultyMean(ctx context.Context, faculty string) (float64, error) {
	query, args, err := r.db.queries.selectFacultyMean(faculty)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		mean  sql.NullFloat64
		count int64
	)
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&mean, &count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*studentRepository.FacultyMean").Str("faculty", faculty).Msg("error computing mean")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if count == 0 || !mean.Valid {
		return 0, ErrStudentNotFound
	}

	return mean.Float64, nil
}
