package bank

// amountMode determines how movement amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Montant" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a bank export format.
// Adding a new bank is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	LabelCol   string
	RefCol     string // optional: stable movement reference
	IBANCol    string // optional: per-row account IBAN
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.LabelCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of bank export formats to try during
// auto-detection. More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "relevé carte",
		DateCol:    "Date",
		LabelCol:   "Libellé",
		AmountMode: amountSplit,
		DebitCol:   "Débit",
		CreditCol:  "Crédit",
	},
	{
		Name:       "relevé compte",
		DateCol:    "Date valeur",
		LabelCol:   "Libellé",
		RefCol:     "Référence",
		IBANCol:    "IBAN",
		AmountMode: amountSingle,
		AmountCol:  "Montant",
	},
	{
		Name:       "export simple",
		DateCol:    "Date",
		LabelCol:   "Libelle",
		AmountMode: amountSingle,
		AmountCol:  "Montant",
	},
}
