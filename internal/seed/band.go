package seed

import "iline-employees/internal/models"

// Band is a contiguous range of generation indices sharing a post, a salary
// range and a manager id pool. Last < 0 leaves the band open-ended.
type Band struct {
	Post       string
	First      int
	Last       int
	MinSalary  int64
	MaxSalary  int64
	ManagerMin int
	ManagerMax int
}

// Bands partitions the generation index space. Ids are assigned from 1 in
// generation order, so index i becomes id i+1 and each manager pool covers
// exactly the ids of the band above it.
var Bands = []Band{
	{Post: models.PostCEO, First: 0, Last: 0, MinSalary: 430000, MaxSalary: 500000},
	{Post: models.PostManager, First: 1, Last: 30, MinSalary: 300000, MaxSalary: 370000, ManagerMin: 1, ManagerMax: 1},
	{Post: models.PostTeamLead, First: 31, Last: 330, MinSalary: 200000, MaxSalary: 280000, ManagerMin: 2, ManagerMax: 31},
	{Post: models.PostSeniorDeveloper, First: 331, Last: 1330, MinSalary: 110000, MaxSalary: 180000, ManagerMin: 32, ManagerMax: 331},
	{Post: models.PostDeveloper, First: 1331, Last: -1, MinSalary: 50000, MaxSalary: 100000, ManagerMin: 32, ManagerMax: 331},
}

func (b Band) Contains(index int) bool {
	return index >= b.First && (b.Last < 0 || index <= b.Last)
}

func (b Band) HasManager() bool {
	return b.ManagerMin > 0
}

// BandFor returns the band of a zero-based generation index.
func BandFor(index int) Band {
	for _, band := range Bands {
		if band.Contains(index) {
			return band
		}
	}
	return Bands[len(Bands)-1]
}
