package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-student-registry/models"
)

// StudentValidator validates [models.Student] and [models.StudentUpdate].
type StudentValidator struct{}

// NewStudentValidator constructs a [StudentValidator].
func NewStudentValidator() Validator {
	return &StudentValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
func (v *StudentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Student:
		return v.validateStudent(value, fields...)
	case *models.Student:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateStudent(*value, fields...)
	case models.StudentUpdate:
		return v.validateStudentUpdate(value, fields...)
	case *models.StudentUpdate:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateStudentUpdate(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *StudentValidator) validateStudent(student models.Student, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLastName, FieldFirstName, FieldFaculty, FieldCourse, FieldResult}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldStudentID:
			if student.ID <= 0 {
				err = ErrInvalidStudentID
			}
		case FieldLastName:
			err = requireText(student.LastName, ErrEmptyLastName)
		case FieldFirstName:
			err = requireText(student.FirstName, ErrEmptyFirstName)
		case FieldFaculty:
			err = requireText(student.Faculty, ErrEmptyFaculty)
		case FieldCourse:
			err = requireText(student.Course, ErrEmptyCourse)
		case FieldResult:
			if student.Result < 0 {
				err = ErrNegativeResult
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateStudentUpdate checks only the fields present in the update.
func (v *StudentValidator) validateStudentUpdate(update models.StudentUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStudentID, FieldLastName, FieldFirstName, FieldFaculty, FieldCourse, FieldResult}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldStudentID:
			if update.ID <= 0 {
				err = ErrInvalidStudentID
			}
		case FieldLastName:
			err = requireOptionalText(update.LastName, ErrEmptyLastName)
		case FieldFirstName:
			err = requireOptionalText(update.FirstName, ErrEmptyFirstName)
		case FieldFaculty:
			err = requireOptionalText(update.Faculty, ErrEmptyFaculty)
		case FieldCourse:
			err = requireOptionalText(update.Course, ErrEmptyCourse)
		case FieldResult:
			if update.Result.Set && update.Result.Value < 0 {
				err = ErrNegativeResult
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func requireText(s string, errEmpty error) error {
	if strings.TrimSpace(s) == "" {
		return errEmpty
	}
	return nil
}

func requireOptionalText(o models.Optional[string], errEmpty error) error {
	if !o.Set {
		return nil
	}
	return requireText(o.Value, errEmpty)
}
