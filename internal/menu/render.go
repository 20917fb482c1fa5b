package menu

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"iline-employees/internal/service"
)

var employeeHeaders = []string{"ID", "Full name", "Post", "Hire date", "Salary", "Manager ID"}

var (
	failureMarker = color.New(color.FgRed)
	successMarker = color.New(color.FgGreen)
)

func renderEmployees(w io.Writer, employees []service.EmployeeDTO) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(employeeHeaders)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	for _, employee := range employees {
		managerID := ""
		if employee.ManagerID != nil {
			managerID = strconv.Itoa(*employee.ManagerID)
		}
		table.Append([]string{
			strconv.Itoa(employee.ID),
			employee.FullName,
			employee.Post,
			employee.HireDate,
			strconv.FormatFloat(employee.Salary, 'f', 2, 64),
			managerID,
		})
	}

	table.Render()
}

func printFailure(w io.Writer, format string, args ...interface{}) {
	_, _ = failureMarker.Fprintln(w, "✗ "+fmt.Sprintf(format, args...))
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	_, _ = successMarker.Fprintln(w, "✓ "+fmt.Sprintf(format, args...))
}

// pageCount is never below one so an empty table still shows page 1/1.
func pageCount(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
