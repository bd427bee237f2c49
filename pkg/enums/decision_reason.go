package enums

// DecisionReason is the machine-readable cause attached to every permission
// verdict that is not a plain allow.
type DecisionReason string

const (
	ReasonInvalidRequest  DecisionReason = "INVALID_REQUEST"
	ReasonNotAssociated   DecisionReason = "NOT_ASSOCIATED"
	ReasonOutsideShift    DecisionReason = "OUTSIDE_SHIFT"
	ReasonOutsideGeofence DecisionReason = "OUTSIDE_GEOFENCE"
	ReasonUnknownRole     DecisionReason = "UNKNOWN_ROLE"
	ReasonInternalError   DecisionReason = "INTERNAL_ERROR"
)

// String implements fmt.Stringer.
func (r DecisionReason) String() string {
	return string(r)
}
