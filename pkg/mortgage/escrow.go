package mortgage

import "github.com/iwvelando/mortgage-calculator/pkg/constants"

// Escrows holds the monthly equivalents of the escrowed and add-on costs.
type Escrows struct {
	TaxMo       float64 `json:"taxMo" yaml:"taxMo"`
	InsuranceMo float64 `json:"insMo" yaml:"insMo"`
	HOAMo       float64 `json:"hoaMo" yaml:"hoaMo"`
	PMIMo       float64 `json:"pmiMo" yaml:"pmiMo"`
}

// EscrowInclusion selects which escrow items count toward the full payment.
type EscrowInclusion struct {
	Tax       bool `json:"tax" yaml:"tax"`
	Insurance bool `json:"insurance" yaml:"insurance"`
	HOA       bool `json:"hoa" yaml:"hoa"`
	PMI       bool `json:"pmi" yaml:"pmi"`
}

// IncludeAll counts every escrow item.
var IncludeAll = EscrowInclusion{Tax: true, Insurance: true, HOA: true, PMI: true}

// MonthlyEscrows converts annual tax and insurance to monthly amounts; HOA and
// PMI are already monthly and pass through unchanged.
func MonthlyEscrows(taxYr, insuranceYr, hoaMo, pmiMo float64) Escrows {
	return Escrows{
		TaxMo:       taxYr / constants.MonthsPerYear,
		InsuranceMo: insuranceYr / constants.MonthsPerYear,
		HOAMo:       hoaMo,
		PMIMo:       pmiMo,
	}
}

// Total sums all monthly escrow items.
func (e Escrows) Total() float64 {
	return e.TaxMo + e.InsuranceMo + e.HOAMo + e.PMIMo
}

// FullPayment adds the included escrow items to a principal and interest payment.
func FullPayment(pi float64, escrows Escrows, include EscrowInclusion) float64 {
	total := pi
	if include.Tax {
		total += escrows.TaxMo
	}
	if include.Insurance {
		total += escrows.InsuranceMo
	}
	if include.HOA {
		total += escrows.HOAMo
	}
	if include.PMI {
		total += escrows.PMIMo
	}
	return total
}
