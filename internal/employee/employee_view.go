package employee

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const editEmployeeTemplate = "edit-employee"

var views = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// editableEmployee flattens nullable columns to plain strings for the form.
type editableEmployee struct {
	ID             uint
	EmployeeID     string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    string
	Gender         string
	Address        string
	Department     string
	Position       string
	EmploymentType string
	StartDate      string
	Salary         string
	Username       string
	Permissions    string
}

func editEmployeeData(empl EmployeeResponse) map[string]any {
	return map[string]any{
		"employee": editableEmployee{
			ID:             empl.ID,
			EmployeeID:     empl.EmployeeID,
			FirstName:      empl.FirstName,
			LastName:       empl.LastName,
			Email:          empl.Email,
			Phone:          deref(empl.Phone),
			DateOfBirth:    deref(empl.DateOfBirth),
			Gender:         deref(empl.Gender),
			Address:        deref(empl.Address),
			Department:     empl.Department,
			Position:       empl.Position,
			EmploymentType: empl.EmploymentType,
			StartDate:      empl.StartDate,
			Salary:         deref(empl.Salary),
			Username:       empl.Username,
			Permissions:    empl.Permissions,
		},
		"genders":         []string{GenderMale, GenderFemale, GenderOther},
		"employmentTypes": []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern},
		"permissions":     []string{PermissionEmployee, PermissionManager, PermissionAdmin},
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
