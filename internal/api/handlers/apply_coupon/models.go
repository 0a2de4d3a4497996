package apply_coupon

// ApplyCouponRequest код купона
type ApplyCouponRequest struct {
	Code string `json:"code"`
}
