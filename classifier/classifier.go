// Package classifier maps free-text invoicing questions onto a fixed set of
// PostgreSQL statements using ordered keyword rules.
package classifier

import "strings"

// Statements produced by the rules. Table and column identifiers, as well as
// the status values, are a contract with the invoice store.
const (
	TotalRevenueSQL = `SELECT SUM(total_amount) AS total_revenue FROM Invoice;`

	MonthlyRevenueSQL = `SELECT TO_CHAR(issue_date, 'Mon YYYY') AS month, SUM(total_amount) AS revenue
FROM Invoice
GROUP BY TO_CHAR(issue_date, 'Mon YYYY'), DATE_TRUNC('month', issue_date)
ORDER BY DATE_TRUNC('month', issue_date);`

	topVendorsSQL = `SELECT v.name AS vendor_name, SUM(i.total_amount) AS total_spend
FROM Invoice i JOIN Vendor v ON i.vendor_id = v.id
GROUP BY v.id, v.name ORDER BY total_spend DESC LIMIT `

	OverdueInvoicesSQL = `SELECT i.invoice_number, v.name AS vendor, i.total_amount, i.due_date
FROM Invoice i JOIN Vendor v ON i.vendor_id = v.id
WHERE i.status = 'OVERDUE';`

	PaidInvoicesSQL = `SELECT i.invoice_number, v.name AS vendor, i.total_amount, i.issue_date
FROM Invoice i JOIN Vendor v ON i.vendor_id = v.id
WHERE i.status = 'PAID';`

	PendingInvoicesSQL = `SELECT i.invoice_number, v.name AS vendor, i.total_amount, i.due_date
FROM Invoice i JOIN Vendor v ON i.vendor_id = v.id
WHERE i.status = 'PENDING';`

	CategoryAverageSQL = `SELECT category, AVG(total_amount) AS avg_amount
FROM Invoice WHERE category IS NOT NULL
GROUP BY category;`

	CategoryTotalsSQL = `SELECT category, SUM(total_amount) AS total_spend, COUNT(*) AS invoice_count
FROM Invoice WHERE category IS NOT NULL
GROUP BY category ORDER BY total_spend DESC;`

	ThisMonthSQL = `SELECT COUNT(*) AS invoice_count, SUM(total_amount) AS total_amount
FROM Invoice
WHERE EXTRACT(MONTH FROM issue_date) = EXTRACT(MONTH FROM CURRENT_DATE)
AND EXTRACT(YEAR FROM issue_date) = EXTRACT(YEAR FROM CURRENT_DATE);`

	Last90DaysSQL = `SELECT COUNT(*) AS invoice_count, SUM(total_amount) AS total_spend
FROM Invoice
WHERE issue_date >= CURRENT_DATE - INTERVAL '90 days';`

	ThisYearSQL = `SELECT COUNT(*) AS invoice_count, SUM(total_amount) AS total_revenue
FROM Invoice
WHERE EXTRACT(YEAR FROM issue_date) = EXTRACT(YEAR FROM CURRENT_DATE);`

	InvoiceCountSQL  = `SELECT COUNT(*) AS total_invoices FROM Invoice;`
	VendorCountSQL   = `SELECT COUNT(*) AS total_vendors FROM Vendor;`
	CustomerCountSQL = `SELECT COUNT(*) AS total_customers FROM Customer;`

	DefaultSQL = `SELECT COUNT(*) AS total_invoices, SUM(total_amount) AS total_revenue FROM Invoice;`
)

// Limit is the row cap of the top-vendors ranking. Only the declared values
// may ever reach a statement.
type Limit int

const (
	LimitFive Limit = 5
	LimitTen  Limit = 10
)

var limitLiterals = map[Limit]string{
	LimitFive: "5",
	LimitTen:  "10",
}

// TopVendorsSQL returns the ranked vendor spend statement. Unknown limits are
// clamped to LimitFive.
func TopVendorsSQL(limit Limit) string {
	lit, ok := limitLiterals[limit]
	if !ok {
		lit = limitLiterals[LimitFive]
	}
	return topVendorsSQL + lit + ";"
}

// DefaultRule is the name reported when no other rule applies.
const DefaultRule = "default"

// Rule is a single entry of the priority chain. Build receives the lower-cased
// question and reports ok=false when the rule does not apply.
type Rule struct {
	Name  string
	Build func(lowered string) (sql string, ok bool)
}

// Match is the outcome of resolving a question.
type Match struct {
	Rule string
	SQL  string
}

var rules = []Rule{
	{Name: "total_revenue", Build: func(q string) (string, bool) {
		return TotalRevenueSQL, containsAny(q, "total spend", "total revenue")
	}},
	{Name: "monthly_revenue", Build: func(q string) (string, bool) {
		return MonthlyRevenueSQL, containsAll(q, "revenue", "month")
	}},
	{Name: "top_vendors", Build: func(q string) (string, bool) {
		if !strings.Contains(q, "top") || !containsAny(q, "vendor", "customer") {
			return "", false
		}
		// Any "10" counts, including ones that are not a requested size.
		limit := LimitFive
		if strings.Contains(q, "10") {
			limit = LimitTen
		}
		return TopVendorsSQL(limit), true
	}},
	{Name: "overdue_invoices", Build: func(q string) (string, bool) {
		return OverdueInvoicesSQL, strings.Contains(q, "overdue")
	}},
	// "unpaid" lands here as well.
	{Name: "paid_invoices", Build: func(q string) (string, bool) {
		return PaidInvoicesSQL, strings.Contains(q, "paid")
	}},
	{Name: "pending_invoices", Build: func(q string) (string, bool) {
		return PendingInvoicesSQL, strings.Contains(q, "pending")
	}},
	{Name: "category", Build: func(q string) (string, bool) {
		if !strings.Contains(q, "category") {
			return "", false
		}
		if strings.Contains(q, "average") {
			return CategoryAverageSQL, true
		}
		return CategoryTotalsSQL, true
	}},
	{Name: "this_month", Build: func(q string) (string, bool) {
		return ThisMonthSQL, strings.Contains(q, "this month")
	}},
	{Name: "last_90_days", Build: func(q string) (string, bool) {
		return Last90DaysSQL, containsAny(q, "last 90 days", "90 days")
	}},
	{Name: "this_year", Build: func(q string) (string, bool) {
		return ThisYearSQL, strings.Contains(q, "this year")
	}},
	// A "how many" without a known subject falls through to the default.
	{Name: "count", Build: func(q string) (string, bool) {
		if !strings.Contains(q, "how many") {
			return "", false
		}
		switch {
		case strings.Contains(q, "invoice"):
			return InvoiceCountSQL, true
		case strings.Contains(q, "vendor"):
			return VendorCountSQL, true
		case strings.Contains(q, "customer"):
			return CustomerCountSQL, true
		}
		return "", false
	}},
}

// Rules returns a copy of the ordered rule chain, excluding the default.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Resolve runs the rule chain against question and returns the first match.
func Resolve(question string) Match {
	lowered := strings.ToLower(question)
	for _, r := range rules {
		if sql, ok := r.Build(lowered); ok {
			return Match{Rule: r.Name, SQL: sql}
		}
	}
	return Match{Rule: DefaultRule, SQL: DefaultSQL}
}

// Classify returns the statement answering question. It never fails.
func Classify(question string) string {
	return Resolve(question).SQL
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
