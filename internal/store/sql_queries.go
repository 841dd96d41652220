package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-student-registry/models"
)

var (
	userColumns    = []string{"user_id", "email", "password_hash", "created_at"}
	sessionColumns = []string{"token_hash", "user_id", "created_at"}
	studentColumns = []string{"id", "lastname", "firstname", "faculty", "course", "result"}
)

// queries renders every statement of the store for one dialect. PostgreSQL
// gets $n placeholders, SQLite gets ?.
type queries struct {
	sb sq.StatementBuilderType
}

func newQueries(dialect Dialect) queries {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}
	return queries{sb: sq.StatementBuilder.PlaceholderFormat(placeholder)}
}

// ── users ─────────────────────────────────────────────────────────────────────

func (q queries) findUserIDByEmail(email string) (string, []any, error) {
	return q.sb.Select("user_id").
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func (q queries) insertUser(user models.User) (string, []any, error) {
	return q.sb.Insert(models.User{}.TableName()).
		Columns("email", "password_hash", "created_at").
		Values(user.Email, user.PasswordHash, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

func (q queries) findUserBy(column string, value any) (string, []any, error) {
	return q.sb.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

// ── sessions ──────────────────────────────────────────────────────────────────

func (q queries) insertSession(session models.Session) (string, []any, error) {
	return q.sb.Insert(models.Session{}.TableName()).
		Columns(sessionColumns...).
		Values(session.TokenHash, session.UserID, session.CreatedAt).
		ToSql()
}

func (q queries) findSession(tokenHash string) (string, []any, error) {
	return q.sb.Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func (q queries) deleteSession(tokenHash string) (string, []any, error) {
	return q.sb.Delete(models.Session{}.TableName()).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func (q queries) deleteExpiredSessions(olderThan time.Time) (string, []any, error) {
	return q.sb.Delete(models.Session{}.TableName()).
		Where(sq.LtOrEq{"created_at": olderThan}).
		ToSql()
}

// ── students ──────────────────────────────────────────────────────────────────

func (q queries) insertStudent(student models.Student) (string, []any, error) {
	return q.sb.Insert(models.Student{}.TableName()).
		Columns(studentColumns[1:]...).
		Values(student.LastName, student.FirstName, student.Faculty, student.Course, student.Result).
		Suffix("RETURNING id").
		ToSql()
}

func (q queries) selectStudents(filter models.StudentFilter) (string, []any, error) {
	builder := q.sb.Select(studentColumns...).
		From(models.Student{}.TableName()).
		OrderBy("id")

	if filter.Faculty != "" {
		builder = builder.Where(sq.Eq{"faculty": filter.Faculty})
	}
	if filter.Course != "" {
		builder = builder.Where(sq.Eq{"course": filter.Course})
	}
	if filter.ResultBelow.Set {
		builder = builder.Where(sq.Lt{"result": filter.ResultBelow.Value})
	}

	return builder.ToSql()
}

func (q queries) selectStudent(studentID int64) (string, []any, error) {
	return q.sb.Select(studentColumns...).
		From(models.Student{}.TableName()).
		Where(sq.Eq{"id": studentID}).
		ToSql()
}

// updateStudent renders an UPDATE of the set fields only. ok is false when
// the update carries no fields.
func (q queries) updateStudent(update models.StudentUpdate) (query string, args []any, ok bool, err error) {
	if update.IsEmpty() {
		return "", nil, false, nil
	}

	set := make(map[string]any, 5)
	if update.LastName.Set {
		set["lastname"] = update.LastName.Value
	}
	if update.FirstName.Set {
		set["firstname"] = update.FirstName.Value
	}
	if update.Faculty.Set {
		set["faculty"] = update.Faculty.Value
	}
	if update.Course.Set {
		set["course"] = update.Course.Value
	}
	if update.Result.Set {
		set["result"] = update.Result.Value
	}

	query, args, err = q.sb.Update(models.Student{}.TableName()).
		SetMap(set).
		Where(sq.Eq{"id": update.ID}).
		ToSql()
	return query, args, true, err
}

func (q queries) deleteStudent(studentID int64) (string, []any, error) {
	return q.sb.Delete(models.Student{}.TableName()).
		Where(sq.Eq{"id": studentID}).
		ToSql()
}

func (q queries) selectCourses() (string, []any, error) {
	return q.sb.Select("course").
		Distinct().
		From(models.Student{}.TableName()).
		OrderBy("course").
		ToSql()
}

func (q queries) selectFacultyMean(faculty string) (string, []any, error) {
	return q.sb.Select("AVG(CAST(result AS DOUBLE PRECISION))", "COUNT(*)").
		From(models.Student{}.TableName()).
		Where(sq.Eq{"faculty": faculty}).
		ToSql()
}
