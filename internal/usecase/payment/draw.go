package payment

import (
	"math/rand/v2"

	"paylite-backend/internal/domain/transaction"
)

// Picker yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Picker interface {
	Float64() float64
}

// globalPicker uses the runtime-seeded top-level generator, which is safe
// for concurrent requests.
type globalPicker struct{}

func (globalPicker) Float64() float64 { return rand.Float64() }

type Weighted struct {
	Status transaction.Status
	Weight int
}

// DefaultWeights is the simulated gateway: 70% Success, 20% Failed, 10% Pending.
var DefaultWeights = []Weighted{
	{Status: transaction.StatusSuccess, Weight: 70},
	{Status: transaction.StatusFailed, Weight: 20},
	{Status: transaction.StatusPending, Weight: 10},
}

// DrawStatus samples r in [0, total) and returns the first entry whose
// running weight sum reaches r. Non-positive weights never win. With no
// positive weight at all the payment is reported Failed.
func DrawStatus(p Picker, weights []Weighted) transaction.Status {
	total := 0
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total == 0 {
		return transaction.StatusFailed
	}

	r := p.Float64() * float64(total)
	cum := 0
	var last transaction.Status
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		cum += w.Weight
		last = w.Status
		if float64(cum) >= r {
			return w.Status
		}
	}
	return last
}
