package extract

import "github.com/stmtkit/stmtkit/internal/loader"

var dibBands = []bandSpec{
	{field: FieldDate, aliases: []string{"date"}},
	{field: FieldDescription, aliases: []string{"description", "transaction details", "details"}},
	{field: FieldWithdrawal, aliases: []string{"debit"}},
	{field: FieldDeposit, aliases: []string{"credit"}},
	{field: FieldBalance, aliases: []string{"balance"}},
}

// dibBandTolerance is how far a word may start from its header label and
// still belong to that column. The statement right-aligns amounts under
// their headers, so proximity matching beats boundary matching here.
const dibBandTolerance = 25

// extractDIB reads the Dubai Islamic Bank statement. Words are matched to
// the nearest header label; anything that is not near a label is part of the
// running description.
func extractDIB(doc *loader.Document) ([]RawRow, error) {
	return extractByBands(doc, dibBands, true, dibBandTolerance, "Dubai Islamic Bank")
}
