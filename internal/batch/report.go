package batch

import (
	"fmt"
	"io"
)

const (
	PhaseCustomers    = "Customers"
	PhaseHotels       = "Hotels"
	PhaseReservations = "Reservations"
	PhaseDeletes      = "Deletes"
)

// Result is the outcome of one driver step, for example "Created customer C1".
type Result struct {
	Phase   string
	Action  string
	OK      bool
	Message string
}

func (r Result) String() string {
	if r.OK {
		return "[OK] " + r.Action
	}
	return fmt.Sprintf("[FAIL] %s: %s", r.Action, r.Message)
}

type Report struct {
	Results []Result
}

func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK {
			n++
		}
	}
	return n
}

func (r *Report) Succeeded() int {
	return len(r.Results) - r.Failed()
}

// Phase returns the results recorded for one phase in order.
func (r *Report) Phase(name string) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Phase == name {
			out = append(out, res)
		}
	}
	return out
}

// WriteTo prints the report grouped by phase, one line per step.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, phase := range []string{PhaseCustomers, PhaseHotels, PhaseReservations, PhaseDeletes} {
		n, err := fmt.Fprintf(w, "\n--- %s ---\n", phase)
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, res := range r.Phase(phase) {
			n, err := fmt.Fprintf(w, "  %s\n", res)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

func formatRoom(verb string, room int, hotelID string) string {
	return fmt.Sprintf("%s %d in hotel %s", verb, room, hotelID)
}
