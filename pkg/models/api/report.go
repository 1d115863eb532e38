package api

type ChartType string

const (
	ChartNone   ChartType = ""
	ChartBasic  ChartType = "chart"
	ChartPivot  ChartType = "pivot"
	ChartColumn ChartType = "column"
)

type ReportDescriptor struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Domain      string   `json:"domain"`
	Description string   `json:"description"`
	DocLink     string   `json:"doc_link,omitempty"`
	Authors     []string `json:"authors"`
}

type CellRange struct {
	FirstCol int `json:"first_col"`
	FirstRow int `json:"first_row"`
	LastCol  int `json:"last_col"`
	LastRow  int `json:"last_row"`
}

type Presentation struct {
	Chart           ChartType `json:"chart"`
	Categories      CellRange `json:"categories"`
	Values          CellRange `json:"values"`
	CurrencyColumns []int     `json:"currency_columns"`
	GroupBy         []int     `json:"group_by"`
}

type ReportResult struct {
	Name           string       `json:"name"`
	Title          string       `json:"title"`
	Columns        []string     `json:"columns"`
	Rows           [][]any      `json:"rows"`
	Savings        float64      `json:"estimated_savings"`
	DisplaySavings bool         `json:"display_savings"`
	Presentation   Presentation `json:"presentation"`
}

type RunSummary struct {
	Account      string         `json:"account"`
	Regions      []string       `json:"regions"`
	TotalSavings float64        `json:"total_savings"`
	Reports      []ReportResult `json:"reports"`
}
