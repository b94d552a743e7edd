package kitchen

import "time"

// Operation names one of the gateway-backed requests.
type Operation string

const (
	OpReceipt      Operation = "receipt"
	OpRecipes      Operation = "recipes"
	OpMealPlan     Operation = "mealPlan"
	OpShoppingList Operation = "shoppingList"
	OpChat         Operation = "chat"
)

// Operations lists every tracked operation.
var Operations = []Operation{OpReceipt, OpRecipes, OpMealPlan, OpShoppingList, OpChat}

// RequestState is the lifecycle of the latest request of an operation.
type RequestState string

const (
	StateIdle      RequestState = "idle"
	StatePending   RequestState = "pending"
	StateSucceeded RequestState = "succeeded"
	StateFailed    RequestState = "failed"
)

// RequestStatus describes the latest request issued for an operation.
type RequestStatus struct {
	State     RequestState `json:"state"`
	Token     uint64       `json:"token"`
	Error     string       `json:"error,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt,omitzero"`
}

// Pending reports whether the latest request is still in flight.
func (r RequestStatus) Pending() bool {
	return r.State == StatePending
}

// tracker hands out monotonically increasing tokens. Callers hold the reducer lock.
type tracker struct {
	next   uint64
	status map[Operation]RequestStatus
}

func newTracker() *tracker {
	t := &tracker{status: make(map[Operation]RequestStatus, len(Operations))}
	for _, op := range Operations {
		t.status[op] = RequestStatus{State: StateIdle}
	}
	return t
}

// begin marks op pending and returns the token of the new request.
func (t *tracker) begin(op Operation, at time.Time) uint64 {
	t.next++
	t.status[op] = RequestStatus{State: StatePending, Token: t.next, UpdatedAt: at}
	return t.next
}

// latest reports whether token still identifies the newest request of op.
func (t *tracker) latest(op Operation, token uint64) bool {
	return t.status[op].Token == token
}

// finish records the outcome of the request identified by token. Outcomes of superseded
// requests leave the status of the newer request untouched.
func (t *tracker) finish(op Operation, token uint64, err error, at time.Time) {
	if !t.latest(op, token) {
		return
	}
	st := RequestStatus{State: StateSucceeded, Token: token, UpdatedAt: at}
	if err != nil {
		st.State = StateFailed
		st.Error = err.Error()
	}
	t.status[op] = st
}

func (t *tracker) snapshot() map[Operation]RequestStatus {
	out := make(map[Operation]RequestStatus, len(t.status))
	for op, st := range t.status {
		out[op] = st
	}
	return out
}
