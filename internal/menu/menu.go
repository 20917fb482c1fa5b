package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"iline-employees/internal/apperror"
	"iline-employees/internal/service"
)

type State int

const (
	StateAwaitingChoice State = iota
	StateListing
	StateInserting
	StateShowingPositions
	StateExited
)

func (s State) String() string {
	switch s {
	case StateAwaitingChoice:
		return "awaiting_choice"
	case StateListing:
		return "listing"
	case StateInserting:
		return "inserting"
	case StateShowingPositions:
		return "showing_positions"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Nav is a command of the listing sub-loop.
type Nav int

const (
	NavNext Nav = iota
	NavPrevious
	NavQuit
	NavInvalid
)

// parseNav resolves a listing command against the current position. Moving
// past either end of the list is invalid.
func parseNav(input string, page, pages int) Nav {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "n":
		if page < pages {
			return NavNext
		}
	case "p":
		if page > 1 {
			return NavPrevious
		}
	case "q":
		return NavQuit
	}
	return NavInvalid
}

// choiceState maps a top-level selection to the state it leads to.
func choiceState(input string) (State, bool) {
	switch strings.TrimSpace(input) {
	case "1":
		return StateListing, true
	case "2":
		return StateInserting, true
	case "3":
		return StateShowingPositions, true
	case "4":
		return StateExited, true
	default:
		return StateAwaitingChoice, false
	}
}

type Menu struct {
	directory service.Directory
	prompter  Prompter
	out       io.Writer
	pageSize  int
	logger    *zap.Logger
	state     State
}

func New(directory service.Directory, prompter Prompter, out io.Writer, pageSize int, logger *zap.Logger) *Menu {
	if pageSize < 1 {
		pageSize = 20
	}
	return &Menu{
		directory: directory,
		prompter:  prompter,
		out:       out,
		pageSize:  pageSize,
		logger:    logger,
		state:     StateAwaitingChoice,
	}
}

func (m *Menu) State() State {
	return m.state
}

// Run drives the menu until the user exits or input ends. Failures of a
// single operation are reported and the menu goes back to the main choice;
// anything else, such as a lost connection, stops the loop and is returned.
func (m *Menu) Run(ctx context.Context) error {
	m.state = StateAwaitingChoice
	for m.state != StateExited {
		next, err := m.step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			next = StateExited
		case apperror.Recoverable(err):
			printFailure(m.out, "%s", err.Error())
			next = StateAwaitingChoice
		default:
			m.state = StateExited
			return err
		}

		m.logger.Debug("menu transition",
			zap.Stringer("from", m.state),
			zap.Stringer("to", next))
		m.state = next
	}

	fmt.Fprintln(m.out, "Exiting")
	return nil
}

func (m *Menu) step(ctx context.Context) (State, error) {
	switch m.state {
	case StateAwaitingChoice:
		return m.awaitChoice()
	case StateListing:
		return StateAwaitingChoice, m.listEmployees(ctx)
	case StateInserting:
		return StateAwaitingChoice, m.insertEmployee(ctx)
	case StateShowingPositions:
		m.showPositions()
		return StateAwaitingChoice, nil
	default:
		return StateExited, nil
	}
}

func (m *Menu) awaitChoice() (State, error) {
	fmt.Fprintln(m.out, "Main menu:")
	fmt.Fprintln(m.out, "1. List employees")
	fmt.Fprintln(m.out, "2. Add employee")
	fmt.Fprintln(m.out, "3. List positions")
	fmt.Fprintln(m.out, "4. Exit")

	input, err := m.prompter.Prompt("Choose an action (1-4): ")
	if err != nil {
		return StateExited, err
	}

	next, ok := choiceState(input)
	if !ok {
		printFailure(m.out, "Invalid input. Try again.")
	}
	return next, nil
}

func (m *Menu) listEmployees(ctx context.Context) error {
	total, err := m.directory.Count(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	pages := pageCount(total, m.pageSize)

	page := 1
	for {
		employees, err := m.directory.ListPage(ctx, page, m.pageSize)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}

		fmt.Fprintf(m.out, "\nEmployees (page %d/%d)\n", page, pages)
		renderEmployees(m.out, employees)
		fmt.Fprintf(m.out, "\nShown %d of %d employees\n", len(employees), total)
		fmt.Fprintln(m.out, "\nNavigation: n - next, p - previous, q - quit")

		input, err := m.prompter.Prompt("Choose an action: ")
		if err != nil {
			return err
		}

		switch parseNav(input, page, pages) {
		case NavNext:
			page++
		case NavPrevious:
			page--
		case NavQuit:
			return nil
		default:
			printFailure(m.out, "Invalid input or the end of the list was reached")
		}
	}
}

// insertEmployee reads the fields in order and coerces each as soon as it is
// entered, so a bad value stops the operation before any row is written.
func (m *Menu) insertEmployee(ctx context.Context) error {
	fullName, err := m.prompter.Prompt("Full name: ")
	if err != nil {
		return err
	}
	post, err := m.prompter.Prompt("Post: ")
	if err != nil {
		return err
	}

	rawSalary, err := m.prompter.Prompt("Salary: ")
	if err != nil {
		return err
	}
	salary, err := service.ParseSalary(rawSalary)
	if err != nil {
		return err
	}

	rawManagerID, err := m.prompter.Prompt("Manager ID: ")
	if err != nil {
		return err
	}
	managerID, err := service.ParseManagerID(rawManagerID)
	if err != nil {
		return err
	}

	rawHireDate, err := m.prompter.Prompt("Hire date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	hireDate, err := service.ParseHireDate(rawHireDate)
	if err != nil {
		return err
	}

	employee, err := m.directory.CreateEmployee(ctx, service.CreateEmployeeInput{
		FullName:  fullName,
		Post:      post,
		Salary:    salary,
		ManagerID: &managerID,
		HireDate:  hireDate,
	})
	if err != nil {
		return err
	}

	printSuccess(m.out, "Employee %s added with id %d", employee.FullName, employee.ID)
	return nil
}

func (m *Menu) showPositions() {
	fmt.Fprintln(m.out, "Positions:")
	for i, position := range m.directory.Positions() {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, position)
	}
}
