package update_step

// UpdateStepRequest новые значения свойств шага
type UpdateStepRequest struct {
	Properties map[string]interface{} `json:"properties"`
}
