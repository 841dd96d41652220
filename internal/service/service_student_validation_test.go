package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-student-registry/internal/mock"
	"github.com/MKhiriev/go-student-registry/internal/validators"
	"github.com/MKhiriev/go-student-registry/models"
)

func newTestValidationSvc(t *testing.T, ctrl *gomock.Controller) (StudentService, *mock.MockStudentService) {
	t.Helper()

	inner := mock.NewMockStudentService(ctrl)
	return NewStudentValidationService().Wrap(inner), inner
}

func TestStudentValidationService_CreateStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, inner := newTestValidationSvc(t, ctrl)
	ctx := context.Background()

	valid := models.Student{LastName: "Ivanov", FirstName: "Ivan", Faculty: "Physics", Course: "Mechanics", Result: 50}
	inner.EXPECT().CreateStudent(ctx, valid).Return(models.Student{ID: 1}, nil)

	got, err := svc.CreateStudent(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.CreateStudent(ctx, models.Student{LastName: "Ivanov"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyFirstName)
}

func TestStudentValidationService_UpdateStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, inner := newTestValidationSvc(t, ctrl)
	ctx := context.Background()

	update := models.StudentUpdate{ID: 3, Result: models.Some(0)}
	inner.EXPECT().UpdateStudent(ctx, update).Return(models.Student{ID: 3}, nil)

	_, err := svc.UpdateStudent(ctx, update)
	require.NoError(t, err)

	_, err = svc.UpdateStudent(ctx, models.StudentUpdate{ID: 3, Course: models.Some("")})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestStudentValidationService_DeleteStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, inner := newTestValidationSvc(t, ctrl)

	inner.EXPECT().DeleteStudent(gomock.Any(), int64(4)).Return(nil)
	require.NoError(t, svc.DeleteStudent(context.Background(), 4))

	assert.ErrorIs(t, svc.DeleteStudent(context.Background(), 0), ErrInvalidDataProvided)
}

func TestStudentValidationService_QueryArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, inner := newTestValidationSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.FacultyMean(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.LowResults(ctx, "", 30)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	inner.EXPECT().FacultyMean(ctx, "Physics").Return(models.FacultyMean{Faculty: "Physics", Mean: 1}, nil)
	_, err = svc.FacultyMean(ctx, " Physics ")
	require.NoError(t, err)

	inner.EXPECT().LowResults(ctx, "Mechanics", 30).Return(nil, nil)
	_, err = svc.LowResults(ctx, "Mechanics", 30)
	require.NoError(t, err)
}

func TestStudentValidationService_PassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, inner := newTestValidationSvc(t, ctrl)
	ctx := context.Background()

	inner.EXPECT().ListStudents(ctx, "").Return([]models.Student{}, nil)
	inner.EXPECT().ListCourses(ctx).Return([]string{"Algebra"}, nil)
	body := strings.NewReader("lastname,firstname,faculty,course,result\n")
	inner.EXPECT().ImportCSV(ctx, body).Return(models.ImportResult{}, nil)

	_, err := svc.ListStudents(ctx, "")
	require.NoError(t, err)
	_, err = svc.ListCourses(ctx)
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, body)
	require.NoError(t, err)

	_, err = svc.ImportCSV(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
