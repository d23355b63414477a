package engine

// Action is what the cook should do with the oven set-point.
type Action string

const (
	ActionNone  Action = "none"
	ActionHold  Action = "hold"
	ActionRaise Action = "raise"
	ActionLower Action = "lower"
)

// Severity drives how prominently a recommendation is shown.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityModerate Severity = "moderate"
	SeverityUrgent   Severity = "urgent"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeverityUnknown  Severity = "unknown"
)

// MessageKey selects a user-facing message template. Templates and their
// placeholders are rendered by the display layer, never here.
type MessageKey string

const (
	MsgHoldOnTrack     MessageKey = "HOLD_ON_TRACK"
	MsgRaiseSmall      MessageKey = "RAISE_SMALL"
	MsgRaiseModerate   MessageKey = "RAISE_MODERATE"
	MsgRaiseUrgent     MessageKey = "RAISE_URGENT"
	MsgAtCeiling       MessageKey = "AT_CEILING"
	MsgLowerSmall      MessageKey = "LOWER_SMALL"
	MsgLowerModerate   MessageKey = "LOWER_MODERATE"
	MsgLowerUrgent     MessageKey = "LOWER_URGENT"
	MsgAtFloor         MessageKey = "AT_FLOOR"
	MsgOvenOffRestart  MessageKey = "OVEN_OFF_RESTART"
	MsgOvenOffCoast    MessageKey = "OVEN_OFF_COAST"
	MsgUnknownSchedule MessageKey = "UNKNOWN_SCHEDULE"
)

// MessageParams is the typed parameter bag for a MessageKey.
// Temperatures are canonical °F.
type MessageParams struct {
	SuggestedTemp     *float64 `json:"suggested_temp,omitempty"`
	OvenTemp          *float64 `json:"oven_temp,omitempty"`
	ChangeAmount      *float64 `json:"change_amount,omitempty"`
	VarianceMinutes   *int     `json:"variance_minutes,omitempty"`
	MinutesSinceOff   *int     `json:"minutes_since_off,omitempty"`
	EstimatedMeatTemp *float64 `json:"estimated_meat_temp,omitempty"`
}
