package domain

// Role identifies who is operating the session.
type Role string

const (
	RoleEntity        Role = "entidad"
	RoleEvaluator     Role = "auditor"
	RoleAdministrator Role = "admin"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"entidad": true, "auditor": true, "admin": true,
}

// PlanState is the lifecycle state of an improvement plan. The backend
// speaks opaque Spanish tokens; they are translated exactly once at the
// gateway boundary and compared as typed values everywhere else.
type PlanState string

const (
	PlanDraft    PlanState = "draft"
	PlanPending  PlanState = "pending"
	PlanEnabled  PlanState = "enabled_for_follow_up"
	PlanReturned PlanState = "returned_for_adjustment"
	PlanUnknown  PlanState = "unknown"
)

// Backend vocabulary for plan states. Unlisted tokens map to PlanUnknown
// and are treated conservatively (read-only for everyone but admins).
var planStateTokens = map[string]PlanState{
	"Borrador":               PlanDraft,
	"Pendiente":              PlanPending,
	"Enviado":                PlanPending,
	"Habilitado seguimiento": PlanEnabled,
	"Devuelto para ajuste":   PlanReturned,
}

var planStateWire = map[PlanState]string{
	PlanDraft:    "Borrador",
	PlanPending:  "Pendiente",
	PlanEnabled:  "Habilitado seguimiento",
	PlanReturned: "Devuelto para ajuste",
}

// ParsePlanState translates a backend state token. An empty token means
// the server never assigned one, which only happens for fresh drafts.
func ParsePlanState(token string) PlanState {
	if token == "" {
		return PlanDraft
	}
	if s, ok := planStateTokens[token]; ok {
		return s
	}
	return PlanUnknown
}

// Wire returns the backend token for a plan state. Unknown states have no
// wire form and yield the empty string.
func (s PlanState) Wire() string {
	return planStateWire[s]
}

// FollowUpStatus is the status of a periodic follow-up report.
type FollowUpStatus string

const (
	FollowUpPending    FollowUpStatus = "pending"
	FollowUpInProgress FollowUpStatus = "in_progress"
	FollowUpFinalized  FollowUpStatus = "finalized"
)

var followUpStatusTokens = map[string]FollowUpStatus{
	"Pendiente":   FollowUpPending,
	"En progreso": FollowUpInProgress,
	"Finalizado":  FollowUpFinalized,
}

var followUpStatusWire = map[FollowUpStatus]string{
	FollowUpPending:    "Pendiente",
	FollowUpInProgress: "En progreso",
	FollowUpFinalized:  "Finalizado",
}

// ParseFollowUpStatus translates a backend status token, defaulting to
// Pending for blank or unrecognized values.
func ParseFollowUpStatus(token string) FollowUpStatus {
	if s, ok := followUpStatusTokens[token]; ok {
		return s
	}
	return FollowUpPending
}

// Wire returns the backend token for a follow-up status.
func (s FollowUpStatus) Wire() string {
	if w, ok := followUpStatusWire[s]; ok {
		return w
	}
	return followUpStatusWire[FollowUpPending]
}

// EvaluatorDecision is the evaluator's verdict on a submitted plan.
type EvaluatorDecision string

const (
	DecisionUnset    EvaluatorDecision = ""
	DecisionApproved EvaluatorDecision = "approved"
	DecisionRejected EvaluatorDecision = "rejected"
)
