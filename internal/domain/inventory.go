package domain

// Inventory tracks the participant's position for one session. Cash and
// shares are signed: both may go negative (short limits are configuration
// only and not enforced by the matching core).
type Inventory struct {
	Cash   float64 `json:"cash"`
	Shares int64   `json:"shares"`
}
