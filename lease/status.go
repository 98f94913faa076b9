/*
Package lease classifies rental contracts and computes what a tenant owes
for paying late or leaving early.

STATUS:
  A contract's status is DERIVED, never stored:

    active flag false    -> Terminated (encerrado)
    today after end      -> Overdue    (vencido)
    today before start   -> Future     (futuro)
    otherwise            -> Active     (vigente)

  Rules are evaluated top to bottom. Terminated is entered only when the
  back-office ends the contract and flips the flag; the other three follow
  the calendar and change on their own as days pass. "today" is therefore
  always an argument.

PENALTIES:
  LatePaymentPenalty:      flat fee + simple daily interest (contract clause)
  EarlyTerminationPenalty: N months of rent
  CompoundLateInterest:    daily compounding used by the delinquency report

  The two late-interest rules give different figures for the same delay and
  are separate operations.

SEE ALSO:
  - terms.go: Contract terms record and its validation
  - delinquency.go: Overdue bills report
*/
package lease

import "github.com/warp/rent-engine/engine"

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusFuture     Status = "future"
	StatusActive     Status = "active"
	StatusOverdue    Status = "overdue"
	StatusTerminated Status = "terminated"
)

// Label is the pt-BR wording shown on contract listings.
func (s Status) Label() string {
	switch s {
	case StatusFuture:
		return "Futuro"
	case StatusActive:
		return "Vigente"
	case StatusOverdue:
		return "Vencido"
	case StatusTerminated:
		return "Encerrado"
	default:
		return string(s)
	}
}

// Classify derives the status of a contract running over period on day today.
func Classify(today engine.Date, period engine.Period, active bool) Status {
	switch {
	case !active:
		return StatusTerminated
	case today.After(period.End):
		return StatusOverdue
	case today.Before(period.Start):
		return StatusFuture
	default:
		return StatusActive
	}
}
