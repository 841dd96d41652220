package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-student-registry/models"
)

// csvColumns maps accepted header names to student fields. Both English and
// Russian headers are recognized.
var csvColumns = map[string]string{
	"lastname":  "lastname",
	"firstname": "firstname",
	"faculty":   "faculty",
	"course":    "course",
	"result":    "result",
	"фамилия":   "lastname",
	"имя":       "firstname",
	"факультет": "faculty",
	"курс":      "course",
	"оценка":    "result",
}

var requiredCSVColumns = []string{"lastname", "firstname", "faculty", "course", "result"}

// parseStudentsCSV reads a header row followed by one student per row.
// Columns may come in any order; unknown columns are ignored.
func parseStudentsCSV(r io.Reader) ([]models.Student, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrInvalidCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	index := make(map[string]int, len(requiredCSVColumns))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if field, ok := csvColumns[name]; ok {
			if _, dup := index[field]; dup {
				return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidCSV, name)
			}
			index[field] = i
		}
	}
	for _, field := range requiredCSVColumns {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCSV, field)
		}
	}

	var students []models.Student
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
		}

		result, err := strconv.Atoi(strings.TrimSpace(record[index["result"]]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: result is not an integer", ErrInvalidCSV, row)
		}

		students = append(students, models.Student{
			LastName:  strings.TrimSpace(record[index["lastname"]]),
			FirstName: strings.TrimSpace(record[index["firstname"]]),
			Faculty:   strings.TrimSpace(record[index["faculty"]]),
			Course:    strings.TrimSpace(record[index["course"]]),
			Result:    result,
		})
	}

	return students, nil
}
