package submit_step

import "github.com/m04kA/SMC-BookingWizard/internal/app"

// SubmitStepResponse результат отправки шага. Submitted == false означает,
// что шаг отклонил данные; причина в сообщении шага.
type SubmitStepResponse struct {
	SessionID string    `json:"session_id"`
	Submitted bool      `json:"submitted"`
	State     app.State `json:"state"`
}
