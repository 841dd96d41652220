package models

// Student is a single student record.
type Student struct {
	// ID is assigned by the store on insert.
	ID int64 `json:"id"`

	LastName  string `json:"lastname"`
	FirstName string `json:"firstname"`
	Faculty   string `json:"faculty"`
	Course    string `json:"course"`

	// Result is the student's score.
	Result int `json:"result"`
}

// TableName returns the name of the database table
// associated with the Student model.
func (s Student) TableName() string {
	return "students"
}

// StudentUpdate describes a partial update of a single student.
// Only fields whose Set flag is true are written; a zero value with Set
// true (e.g. Result 0) is a valid update.
type StudentUpdate struct {
	// ID is the identifier of the record to update. Taken from the URL.
	ID int64 `json:"-"`

	LastName  Optional[string] `json:"lastname"`
	FirstName Optional[string] `json:"firstname"`
	Faculty   Optional[string] `json:"faculty"`
	Course    Optional[string] `json:"course"`
	Result    Optional[int]    `json:"result"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u StudentUpdate) IsEmpty() bool {
	return !u.LastName.Set && !u.FirstName.Set && !u.Faculty.Set && !u.Course.Set && !u.Result.Set
}

// StudentFilter narrows a student listing. Empty fields do not filter.
type StudentFilter struct {
	Faculty string
	Course  string

	// ResultBelow, when Set, keeps only students with Result < Value.
	ResultBelow Optional[int]
}

// FacultyMean is the average result of a faculty.
type FacultyMean struct {
	Faculty string  `json:"faculty"`
	Mean    float64 `json:"mean"`
}

// ImportResult reports how many records a CSV import created.
type ImportResult struct {
	Imported int `json:"imported"`
}
