// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single payoff optimization.
type Summary struct {
	Scenario         string   `json:"scenario"`
	Field            string   `json:"field"`
	TargetPayments   int      `json:"targetPayments"`
	Original         float64  `json:"original"`
	Value            float64  `json:"value"`
	BaselinePayments int      `json:"baselinePayments"`
	Payments         int      `json:"payments"`
	InterestSaved    float64  `json:"interestSaved"`
	Iterations       int      `json:"iterations"`
	Converged        bool     `json:"converged"`
	Notes            []string `json:"notes,omitempty"`
	OriginalDisplay  string   `json:"originalDisplay,omitempty"`
	ValueDisplay     string   `json:"valueDisplay,omitempty"`
}
