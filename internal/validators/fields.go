package validators

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEmail    = "email"
	FieldPassword = "password"

	FieldStudentID = "id"
	FieldLastName  = "lastname"
	FieldFirstName = "firstname"
	FieldFaculty   = "faculty"
	FieldCourse    = "course"
	FieldResult    = "result"
)

const (
	// MaxPasswordBytes is the longest password bcrypt can hash.
	MaxPasswordBytes = 72
	// MaxEmailLength follows the SMTP path limit.
	MaxEmailLength = 254
)
