package domain

import "sort"

// AvailableServices maps service ID -> employee ID -> location IDs where the
// employee performs the service (GET /services/available)
type AvailableServices map[int64]map[int64][]int64

// ServiceIDs returns every bookable service, sorted
func (a AvailableServices) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

// EmployeeIDs returns the employees performing serviceID, optionally only at locationID
func (a AvailableServices) EmployeeIDs(serviceID, locationID int64) []int64 {
	ids := make([]int64, 0)
	for employeeID, locations := range a[serviceID] {
		if locationID == 0 || containsID(locations, locationID) {
			ids = append(ids, employeeID)
		}
	}
	return sortIDs(ids)
}

// LocationIDs returns the locations of serviceID, optionally only those of employeeID
func (a AvailableServices) LocationIDs(serviceID, employeeID int64) []int64 {
	seen := make(map[int64]struct{})
	for id, locations := range a[serviceID] {
		if employeeID != 0 && id != employeeID {
			continue
		}
		for _, locationID := range locations {
			seen[locationID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

// EmployeeIDsAll returns every employee of any service, sorted
func (a AvailableServices) EmployeeIDsAll() []int64 {
	seen := make(map[int64]struct{})
	for _, employees := range a {
		for id := range employees {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

// LocationIDsAll returns every location of any service, sorted
func (a AvailableServices) LocationIDsAll() []int64 {
	seen := make(map[int64]struct{})
	for serviceID := range a {
		for _, id := range a.LocationIDs(serviceID, 0) {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

// Has returns true if employeeID performs serviceID at locationID; zero IDs match anything
func (a AvailableServices) Has(serviceID, employeeID, locationID int64) bool {
	employees, ok := a[serviceID]
	if !ok {
		return false
	}
	for id, locations := range employees {
		if employeeID != 0 && id != employeeID {
			continue
		}
		if locationID == 0 || containsID(locations, locationID) {
			return true
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sortIDs(ids []int64) []int64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
