// Package queries holds the predefined report catalog: fixed, human-labeled
// SQL strings offered as one-click reports.
package queries

// Chart identifies how a report's result is visualized, if at all.
type Chart int

const (
	ChartNone Chart = iota
	ChartBar
	ChartPie
	ChartLine
)

// Entry is one predefined report. SQL is passed to the query executor
// unchanged; several entries reference an "expenses" table that the schema
// initializer never creates, so they fail with a database error unless such
// a table exists from external setup. That inconsistency is preserved
// deliberately.
type Entry struct {
	Label string
	SQL   string
	Chart Chart
}

// Catalog lists every predefined report in display order.
var Catalog = []Entry{
	{
		Label: "Total Amount Spent per Category",
		SQL:   "SELECT Category, SUM(Amount_Paid) AS Total_Spent FROM expenses GROUP BY Category",
		Chart: ChartBar,
	},
	{
		Label: "Monthly Spending Breakdown",
		SQL:   "SELECT Month, SUM(Amount_Paid) AS Total_Spent FROM expenses GROUP BY Month",
	},
	{
		Label: "Top 5 Highest Expenses",
		SQL:   "SELECT * FROM expenses ORDER BY Amount_Paid DESC LIMIT 5",
	},
	{
		Label: "Cash vs Online Transactions",
		SQL:   "SELECT Payment_Mode, COUNT(*) AS Transaction_Count, SUM(Amount_Paid) AS Total_Spent FROM expenses GROUP BY Payment_Mode",
		Chart: ChartBar,
	},
	{
		Label: "Average Cashback by Category",
		SQL:   "SELECT Category, AVG(Cashback) AS Avg_Cashback FROM expenses GROUP BY Category",
	},
	{
		Label: "Spending Trends Over Time",
		SQL:   "SELECT Date, SUM(Amount_Paid) AS Daily_Spent FROM expenses GROUP BY Date ORDER BY Date",
		Chart: ChartLine,
	},
	{
		Label: "Top Spending Days",
		SQL:   "SELECT Date, SUM(Amount_Paid) AS Total_Spent FROM expenses GROUP BY Date ORDER BY Total_Spent DESC LIMIT 10",
	},
	{
		Label: "Average Spending by Month",
		SQL:   "SELECT Month, AVG(Amount_Paid) AS Avg_Spending FROM expenses GROUP BY Month",
	},
	{
		Label: "Category Breakdown for January",
		SQL:   "SELECT Category, SUM(Amount_Paid) AS Total_Spent FROM January GROUP BY Category",
	},
	{
		Label: "Highest Cashback Transactions",
		SQL:   "SELECT * FROM expenses ORDER BY Cashback DESC LIMIT 5",
	},
	{
		Label: "Transactions Above 300",
		SQL:   "SELECT * FROM expenses WHERE Amount_Paid > 300 ORDER BY Amount_Paid DESC",
	},
	{
		Label: "Most Frequently Used Payment Mode",
		SQL:   "SELECT Payment_Mode, COUNT(*) AS Usage_Count FROM expenses GROUP BY Payment_Mode ORDER BY Usage_Count DESC LIMIT 1",
	},
	{
		Label: "Least Spent Categories",
		SQL:   "SELECT Category, SUM(Amount_Paid) AS Total_Spent FROM expenses GROUP BY Category ORDER BY Total_Spent ASC LIMIT 5",
	},
	{
		Label: "Daily Average Spending",
		SQL:   "SELECT Date, AVG(Amount_Paid) AS Avg_Spending FROM expenses GROUP BY Date ORDER BY Date",
	},
	{
		Label: "Weekly Spending Trends",
		SQL:   "SELECT strftime('%W', Date) AS Week_Number, SUM(Amount_Paid) AS Weekly_Spent FROM expenses GROUP BY Week_Number",
	},
	{
		Label: "Category-Wise Transaction Count",
		SQL:   "SELECT Category, COUNT(*) AS Transaction_Count FROM expenses GROUP BY Category ORDER BY Transaction_Count DESC",
	},
}

// InsightsSQL backs the Visualize Insights mode. Like most catalog entries
// it assumes the unified "expenses" table.
const InsightsSQL = "SELECT Category, SUM(Amount_Paid) as Total_Spent FROM expenses GROUP BY Category"

// Lookup returns the catalog entry with the given label.
func Lookup(label string) (Entry, bool) {
	for _, e := range Catalog {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

// Labels returns the catalog labels in display order.
func Labels() []string {
	labels := make([]string, len(Catalog))
	for i, e := range Catalog {
		labels[i] = e.Label
	}
	return labels
}
