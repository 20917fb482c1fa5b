package seed

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"iline-employees/internal/models"
)

var (
	HireDateFrom = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	HireDateTo   = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Generator produces synthetic employees. Two generators built from the same
// seed produce the same rows.
type Generator struct {
	rnd    *rand.Rand
	person faker.Person
}

func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rnd:    rand.New(rand.NewSource(seed)),
		person: faker.NewWithSeed(rand.NewSource(seed)).Person(),
	}
}

// Employee builds the row for a zero-based generation index. ID is left for
// the database to assign.
func (g *Generator) Employee(index int) models.Employee {
	band := BandFor(index)

	employee := models.Employee{
		FullName: g.person.FirstNameMale() + " " + g.person.LastName(),
		Post:     band.Post,
		HireDate: g.hireDate(),
		Salary:   g.salary(band),
	}
	if band.HasManager() {
		managerID := band.ManagerMin + g.rnd.Intn(band.ManagerMax-band.ManagerMin+1)
		employee.ManagerID = &managerID
	}
	return employee
}

// salary is drawn in whole cents so the value fits decimal(10,2) exactly.
func (g *Generator) salary(band Band) float64 {
	lo, hi := band.MinSalary*100, band.MaxSalary*100
	cents := lo + g.rnd.Int63n(hi-lo+1)
	return float64(cents) / 100
}

func (g *Generator) hireDate() time.Time {
	days := int(HireDateTo.Sub(HireDateFrom).Hours() / 24)
	return HireDateFrom.AddDate(0, 0, g.rnd.Intn(days+1))
}
