// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-student-registry/models"
)

// defaultLowResultThreshold matches the server default for .../low.
const defaultLowResultThreshold = 30

func newStudentsCmd(state *clientState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage student records",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := state.connect(cmd); err != nil {
				return err
			}
			return requireToken(state)
		},
	}

	cmd.AddCommand(
		newStudentsListCmd(state),
		newStudentsAddCmd(state),
		newStudentsUpdateCmd(state),
		newStudentsDeleteCmd(state),
		newStudentsCoursesCmd(state),
		newStudentsMeanCmd(state),
		newStudentsLowCmd(state),
		newStudentsImportCmd(state),
	)

	return cmd
}

func newStudentsListCmd(state *clientState) *cobra.Command {
	var faculty string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students, optionally of one faculty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			students, err := state.server.ListStudents(cmd.Context(), faculty)
			if err != nil {
				return err
			}
			return printStudents(cmd.OutOrStdout(), students)
		},
	}
	cmd.Flags().StringVar(&faculty, "faculty", "", "only students of this faculty")

	return cmd
}

func newStudentsAddCmd(state *clientState) *cobra.Command {
	var student models.Student

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := state.server.CreateStudent(cmd.Context(), student)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&student.LastName, "lastname", "", "last name")
	flags.StringVar(&student.FirstName, "firstname", "", "first name")
	flags.StringVar(&student.Faculty, "faculty", "", "faculty")
	flags.StringVar(&student.Course, "course", "", "course")
	flags.IntVar(&student.Result, "result", 0, "result")
	for _, name := range []string{"lastname", "firstname", "faculty", "course", "result"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// newStudentsUpdateCmd sends only the flags given on the command line.
func newStudentsUpdateCmd(state *clientState) *cobra.Command {
	var student models.Student

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStudentID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			update := models.StudentUpdate{ID: id}
			if flags.Changed("lastname") {
				update.LastName = models.Some(student.LastName)
			}
			if flags.Changed("firstname") {
				update.FirstName = models.Some(student.FirstName)
			}
			if flags.Changed("faculty") {
				update.Faculty = models.Some(student.Faculty)
			}
			if flags.Changed("course") {
				update.Course = models.Some(student.Course)
			}
			if flags.Changed("result") {
				update.Result = models.Some(student.Result)
			}

			updated, err := state.server.UpdateStudent(cmd.Context(), update)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), updated)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&student.LastName, "lastname", "", "new last name")
	flags.StringVar(&student.FirstName, "firstname", "", "new first name")
	flags.StringVar(&student.Faculty, "faculty", "", "new faculty")
	flags.StringVar(&student.Course, "course", "", "new course")
	flags.IntVar(&student.Result, "result", 0, "new result")

	return cmd
}

func newStudentsDeleteCmd(state *clientState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStudentID(args[0])
			if err != nil {
				return err
			}
			if err = state.server.DeleteStudent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted student %d\n", id)
			return nil
		},
	}
}

func newStudentsCoursesCmd(state *clientState) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List distinct courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			courses, err := state.server.ListCourses(cmd.Context())
			if err != nil {
				return err
			}
			for _, course := range courses {
				fmt.Fprintln(cmd.OutOrStdout(), course)
			}
			return nil
		},
	}
}

func newStudentsMeanCmd(state *clientState) *cobra.Command {
	return &cobra.Command{
		Use:   "mean FACULTY",
		Short: "Show the mean result of a faculty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mean, err := state.server.FacultyMean(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\n", mean.Faculty, mean.Mean)
			return nil
		},
	}
}

func newStudentsLowCmd(state *clientState) *cobra.Command {
	var below int

	cmd := &cobra.Command{
		Use:   "low COURSE",
		Short: "List students of a course with a result below the threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := state.server.LowResults(cmd.Context(), args[0], below)
			if err != nil {
				return err
			}
			return printStudents(cmd.OutOrStdout(), students)
		},
	}
	cmd.Flags().IntVar(&below, "below", defaultLowResultThreshold, "result threshold (exclusive)")

	return cmd
}

func newStudentsImportCmd(state *clientState) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import students from a CSV file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			result, err := state.server.ImportCSV(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d students\n", result.Imported)
			return nil
		},
	}
}

func parseStudentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student id %q", raw)
	}
	return id, nil
}

func printStudents(w io.Writer, students []models.Student) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLASTNAME\tFIRSTNAME\tFACULTY\tCOURSE\tRESULT")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", s.ID, s.LastName, s.FirstName, s.Faculty, s.Course, s.Result)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
