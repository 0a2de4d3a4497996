package domain

// DepositType defines how much of a booking is paid upfront
type DepositType string

const (
	DepositDisabled   DepositType = "disabled"
	DepositFixed      DepositType = "fixed"
	DepositPercentage DepositType = "percentage"
)

// Variation is a per-employee override of a service's price, duration and capacity
type Variation struct {
	EmployeeID  int64
	Price       float64 // always set; zero is a free booking
	Duration    int     // minutes
	MinCapacity int
	MaxCapacity int
}

// Service represents a bookable service
type Service struct {
	ID            int64
	Name          string
	Categories    []string
	Price         float64
	Duration      int // minutes
	BufferBefore  int // minutes
	BufferAfter   int // minutes
	LeadTime      int // minutes before the start when booking closes
	MinCapacity   int
	MaxCapacity   int
	MultiplyPrice bool // price is per person
	DepositType   DepositType
	DepositAmount float64
	Variations    map[int64]Variation // keyed by employee ID
}

// variation returns the override for employeeID, if any
func (s *Service) variation(employeeID int64) (Variation, bool) {
	if employeeID == 0 || s.Variations == nil {
		return Variation{}, false
	}
	v, ok := s.Variations[employeeID]
	return v, ok
}

// GetPrice returns the price of one booking. Zero capacity means the minimum
// capacity; unknown employees fall back to the base price.
func (s *Service) GetPrice(employeeID int64, capacity int) float64 {
	if capacity <= 0 {
		capacity = s.GetMinCapacity(employeeID)
	}

	price := s.Price
	if v, ok := s.variation(employeeID); ok {
		price = v.Price
	}

	if s.MultiplyPrice {
		return price * float64(capacity)
	}
	return price
}

// GetDuration returns the duration in minutes for employeeID
func (s *Service) GetDuration(employeeID int64) int {
	if v, ok := s.variation(employeeID); ok && v.Duration > 0 {
		return v.Duration
	}
	return s.Duration
}

// GetMinCapacity returns the minimum number of people for employeeID
func (s *Service) GetMinCapacity(employeeID int64) int {
	if v, ok := s.variation(employeeID); ok && v.MinCapacity > 0 {
		return v.MinCapacity
	}
	return s.MinCapacity
}

// GetMaxCapacity returns the maximum number of people for employeeID
func (s *Service) GetMaxCapacity(employeeID int64) int {
	if v, ok := s.variation(employeeID); ok && v.MaxCapacity > 0 {
		return v.MaxCapacity
	}
	return s.MaxCapacity
}

// GetCapacityRange returns every allowed capacity, [min, max] inclusive
func (s *Service) GetCapacityRange(employeeID int64) []int {
	lo, hi := s.GetMinCapacity(employeeID), s.GetMaxCapacity(employeeID)
	if hi < lo {
		hi = lo
	}

	capacities := make([]int, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		capacities = append(capacities, c)
	}
	return capacities
}

// GetDeposit returns the amount to pay upfront for one booking. With deposits
// disabled the whole price is due.
func (s *Service) GetDeposit(employeeID int64, capacity int) float64 {
	price := s.GetPrice(employeeID, capacity)

	var deposit float64
	switch s.DepositType {
	case DepositFixed:
		deposit = s.DepositAmount
		if s.MultiplyPrice {
			if capacity <= 0 {
				capacity = s.GetMinCapacity(employeeID)
			}
			deposit *= float64(capacity)
		}
	case DepositPercentage:
		deposit = price * s.DepositAmount / 100
	default:
		return price
	}

	if deposit > price {
		return price
	}
	if deposit < 0 {
		return 0
	}
	return deposit
}

// HasDeposit returns true if only part of the price is paid upfront
func (s *Service) HasDeposit() bool {
	return s.DepositType == DepositFixed || s.DepositType == DepositPercentage
}

// InCategory returns true if the service belongs to category. The empty
// category matches every service.
func (s *Service) InCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}
