package domain

// Employee represents a staff member who performs services
type Employee struct {
	ID         int64
	Name       string
	ScheduleID int64
}

// Location represents a place where services are performed
type Location struct {
	ID      int64
	Name    string
	Address string
}

// EmployeeIDs collects the IDs of employees, preserving order
func EmployeeIDs(employees []*Employee) []int64 {
	ids := make([]int64, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids
}

// LocationIDs collects the IDs of locations, preserving order
func LocationIDs(locations []*Location) []int64 {
	ids := make([]int64, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.ID)
	}
	return ids
}
