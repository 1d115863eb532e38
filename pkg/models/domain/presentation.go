package domain

type ChartType string

const (
	ChartNone   ChartType = ""
	ChartBasic  ChartType = "chart"
	ChartPivot  ChartType = "pivot"
	ChartColumn ChartType = "column"
)

// CellRange addresses a rectangular region of a rendered sheet,
// zero-based; a row of -1 means "last row".
type CellRange struct {
	FirstCol, FirstRow int
	LastCol, LastRow   int
}

// Presentation is the static rendering metadata a report module declares for
// downstream renderers. It depends on row data only through column positions.
type Presentation struct {
	Chart           ChartType
	Categories      CellRange
	Values          CellRange
	CurrencyColumns []int
	GroupBy         []int
}
