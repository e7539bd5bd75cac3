package booking

import (
	"fmt"

	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
)

type transitionKey struct {
	from   Status
	action Action
}

type edge struct {
	to     Status
	actors []Role
}

// Admins have no confirmed -> cancelled edge. Cancelling a confirmed booking
// is a customer-only path.
var transitions = map[transitionKey]edge{
	{StatusPending, ActionConfirm}:    {to: StatusConfirmed, actors: []Role{RoleAdmin}},
	{StatusPending, ActionCancel}:     {to: StatusCancelled, actors: []Role{RoleAdmin, RoleCustomer}},
	{StatusPending, ActionNoShow}:     {to: StatusNoShow, actors: []Role{RoleAdmin}},
	{StatusConfirmed, ActionComplete}: {to: StatusCompleted, actors: []Role{RoleAdmin}},
	{StatusConfirmed, ActionCancel}:   {to: StatusCancelled, actors: []Role{RoleCustomer}},
}

// StateMachine answers which status an action leads to for a given actor.
type StateMachine struct{}

func NewStateMachine() StateMachine {
	return StateMachine{}
}

// Next returns the target status or a STATE_TRANSITION_INVALID error that
// reports the current status and the rejected action.
func (StateMachine) Next(from Status, action Action, role Role) (Status, error) {
	e, ok := transitions[transitionKey{from: from, action: action}]
	if !ok || !allows(e.actors, role) {
		return "", InvalidTransition(from, action)
	}
	return e.to, nil
}

// AllowedActions lists what role may do from the given status.
func (StateMachine) AllowedActions(from Status, role Role) []Action {
	var out []Action
	for _, a := range []Action{ActionConfirm, ActionComplete, ActionCancel, ActionNoShow} {
		e, ok := transitions[transitionKey{from: from, action: a}]
		if ok && allows(e.actors, role) {
			out = append(out, a)
		}
	}
	return out
}

func allows(actors []Role, role Role) bool {
	for _, r := range actors {
		if r == role {
			return true
		}
	}
	return false
}

func InvalidTransition(from Status, action Action) error {
	return httperr.New(
		httperr.CodeStateTransitionInvalid,
		fmt.Sprintf("cannot %s a booking that is %s", action, from),
	).WithDetails(map[string]any{
		"currentStatus": string(from),
		"action":        string(action),
	})
}
