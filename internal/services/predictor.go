package services

// Predictor scores loan eligibility. The core treats it as a black box: a
// pure function with no side effects, evaluated outside any storage
// transaction. Production deployments plug in the externally trained model.
type Predictor interface {
	Evaluate(income int64, creditScore int, amount int64, termMonths int) bool
}

// HeuristicPredictor is the built-in stand-in for the external model. It
// approves when the credit score clears the floor and the monthly repayment
// stays under a third of monthly income.
type HeuristicPredictor struct {
	MinCreditScore int
}

func NewHeuristicPredictor() *HeuristicPredictor {
	return &HeuristicPredictor{MinCreditScore: 640}
}

func (p *HeuristicPredictor) Evaluate(income int64, creditScore int, amount int64, termMonths int) bool {
	if creditScore < p.MinCreditScore {
		return false
	}
	if termMonths <= 0 {
		return false
	}
	monthlyRepayment := amount / int64(termMonths)
	monthlyIncome := income / 12
	return monthlyRepayment*3 <= monthlyIncome
}
