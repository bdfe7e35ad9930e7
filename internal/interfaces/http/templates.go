package http

import (
	"html/template"
	"strings"
)

const layoutTemplate = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} · Bill Collection</title>
{{if .RefreshSeconds}}<meta http-equiv="refresh" content="{{.RefreshSeconds}};url=/dashboard?cached=1">{{end}}
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6fa;color:#1f2937}
nav{background:#1e3a8a;padding:12px 24px}
nav a{color:#c7d2fe;margin-right:18px;text-decoration:none}
nav a.active{color:#fff;font-weight:600}
main{padding:24px}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:8px;border-bottom:1px solid #e5e7eb;text-align:left}
.cards{display:flex;gap:16px;margin-bottom:24px}
.card{background:#fff;padding:16px;border-radius:8px;flex:1}
.status-badge{padding:2px 8px;border-radius:12px;font-size:12px;background:#e5e7eb}
.status-paid,.status-completed,.status-payment_confirmed{background:#d1fae5}
.status-overdue,.status-failed{background:#fee2e2}
.status-pending,.status-initiated{background:#fef3c7}
.toast{padding:10px 16px;margin-bottom:8px;border-radius:6px}
.toast-info{background:#dbeafe}.toast-success{background:#d1fae5}
.toast-warning{background:#fef3c7}.toast-error{background:#fee2e2}
.empty{text-align:center;color:#6b7280}
form.inline{display:inline}
</style>
</head>
<body>
<nav>
<a href="/dashboard" {{if eq .Nav "dashboard"}}class="active"{{end}}>Dashboard</a>
<a href="/bills" {{if eq .Nav "bills"}}class="active"{{end}}>Bills</a>
<a href="/calls" {{if eq .Nav "calls"}}class="active"{{end}}>Call Logs</a>
<a href="/analytics" {{if eq .Nav "analytics"}}class="active"{{end}}>Analytics</a>
</nav>
<main>
{{range .Toasts}}<div class="toast toast-{{.Kind}}">{{.Message}}</div>{{end}}
{{end}}

{{define "footer"}}</main>
</body>
</html>{{end}}

{{define "badge"}}<span class="status-badge {{.Class}}">{{.Label}}</span>{{end}}

{{define "statusFilter"}}<form method="get" action="{{.Action}}">
<select name="status" onchange="this.form.submit()">
<option value="">All</option>
{{$current := .Current}}{{range .Options}}<option value="{{.}}" {{if eq . $current}}selected{{end}}>{{.}}</option>{{end}}
</select>
<noscript><button type="submit">Filter</button></noscript>
</form>{{end}}
`

const dashboardTemplate = `
{{define "dashboard"}}{{template "header" .}}
<h1>Good {{.Greeting}}</h1>
<div class="cards">
{{with .Stats}}{{if .Unavailable}}<div class="card error">{{.Unavailable}}</div>{{else}}
<div class="card"><h3>Total Bills</h3><p>{{.Total}}</p></div>
<div class="card"><h3>Pending</h3><p>{{.Pending}}</p></div>
<div class="card"><h3>Paid</h3><p>{{.Paid}}</p></div>
<div class="card"><h3>Overdue</h3><p>{{.Overdue}}</p></div>
<div class="card"><h3>Collection Rate</h3><p>{{.CollectionRate}}</p></div>
{{end}}{{else}}<div class="card">Loading...</div>{{end}}
</div>
<div>
<form class="inline" method="post" action="/dashboard/refresh"><button type="submit">Refresh</button></form>
<form class="inline" method="post" action="/calls/batch"><input type="hidden" name="return" value="/dashboard"><button type="submit">Initiate Calls</button></form>
<a href="/bills/pending">View Pending</a>
</div>
<div class="cards">
<div class="card">
<h2>Recent Activity</h2>
{{with .Activity}}
{{range .Items}}<div class="activity-item">
<strong>{{.CustomerPhone}}</strong> {{template "badge" .Status}}
<div>{{.CreatedAt}}</div>
{{if .Outcome}}<div>Outcome: {{.Outcome}}</div>{{end}}
</div>{{else}}<p class="empty">{{.Placeholder}}</p>{{end}}
{{end}}
</div>
<div class="card">
<h2>Overdue Bills</h2>
{{with .Overdue}}
{{range .Items}}<div class="overdue-item">
<strong>{{.CustomerName}}</strong> {{.BillNumber}}
<div>{{.Amount}} · Due {{.DueDate}}</div>
</div>{{else}}<p class="empty">{{.Placeholder}}</p>{{end}}
{{end}}
</div>
</div>
{{template "footer" .}}{{end}}
`

const billsTemplate = `
{{define "billRows"}}{{$return := .Return}}{{with .Bills}}
{{range .Rows}}<tr>
<td>{{.BillNumber}}</td><td>{{.CustomerName}}</td><td>{{.CustomerPhone}}</td>
<td>{{.Amount}}</td><td>{{.DueDate}}</td><td>{{template "badge" .Status}}</td>
<td>
<a href="/bills/{{.ID}}">View</a>
{{if .CanCall}}<form class="inline" method="post" action="/bills/{{.ID}}/call"><input type="hidden" name="return" value="{{$return}}"><button type="submit">Call</button></form>{{end}}
<form class="inline" method="post" action="/bills/{{.ID}}/delete"><input type="hidden" name="return" value="{{$return}}"><button type="submit">Delete</button></form>
</td>
</tr>{{else}}<tr><td colspan="{{len .Columns}}" class="empty">{{.Placeholder}}</td></tr>{{end}}
{{end}}{{end}}

{{define "bills"}}{{template "header" .}}
<h1>Bills</h1>
{{template "statusFilter" .Filter}}
<a href="{{.ExportURL}}">Export</a>
<table>
<thead><tr>{{range .BillColumns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{template "billRows" .}}</tbody>
</table>
<h2>Add Bill</h2>
<form method="post" action="/bills">
<input name="customer_name" placeholder="Customer name" required>
<input name="customer_phone" placeholder="Phone" required>
<input name="customer_email" type="email" placeholder="Email">
<input name="consumer_number" placeholder="Consumer number" required>
<input name="bill_number" placeholder="Bill number" required>
<input name="bill_amount" type="number" step="0.01" min="0.01" placeholder="Amount" required>
<input name="due_date" type="date" required>
<input name="billing_period" placeholder="Billing period">
<button type="submit">Add Bill</button>
</form>
{{template "footer" .}}{{end}}

{{define "bill"}}{{template "header" .}}
{{with .BillDetail}}
<h1>Bill {{.Row.BillNumber}}</h1>
<table>
<tr><th>Customer</th><td>{{.Row.CustomerName}}</td></tr>
<tr><th>Phone</th><td>{{.Row.CustomerPhone}}</td></tr>
<tr><th>Email</th><td>{{.CustomerEmail}}</td></tr>
<tr><th>Consumer Number</th><td>{{.ConsumerNumber}}</td></tr>
<tr><th>Amount</th><td>{{.Row.Amount}}</td></tr>
<tr><th>Due Date</th><td>{{.Row.DueDate}}</td></tr>
<tr><th>Billing Period</th><td>{{.BillingPeriod}}</td></tr>
<tr><th>Status</th><td>{{template "badge" .Row.Status}}</td></tr>
<tr><th>Call Attempts</th><td>{{.CallAttempts}}</td></tr>
<tr><th>Last Call</th><td>{{.LastCallDate}}</td></tr>
{{if .PaymentLink}}<tr><th>Payment Link</th><td><a href="{{.PaymentLink}}">{{.PaymentLink}}</a></td></tr>{{end}}
{{if .Notes}}<tr><th>Notes</th><td>{{.Notes}}</td></tr>{{end}}
</table>
{{with .Payment}}
<h2>Payment</h2>
<table>
<tr><th>Payment ID</th><td>{{.PaymentID}}</td></tr>
<tr><th>Amount</th><td>{{.Amount}}</td></tr>
<tr><th>Status</th><td>{{template "badge" .Status}}</td></tr>
<tr><th>Method</th><td>{{.Method}}</td></tr>
<tr><th>Transaction</th><td>{{.TransactionID}}</td></tr>
<tr><th>Paid At</th><td>{{.PaidAt}}</td></tr>
</table>
{{end}}
{{end}}
<a href="/bills">Back to bills</a>
{{template "footer" .}}{{end}}
`

const callsTemplate = `
{{define "calls"}}{{template "header" .}}
<h1>Call Logs</h1>
{{template "statusFilter" .Filter}}
<table>
<thead><tr>{{range .CallColumns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{with .Calls}}
{{range .Rows}}<tr>
<td>{{.CallID}}</td><td>{{.BillRef}}</td><td>{{.CustomerPhone}}</td>
<td>{{template "badge" .Status}}</td>
<td>{{with .Outcome}}{{template "badge" .}}{{else}}N/A{{end}}</td>
<td>{{.Duration}}</td><td>{{.CreatedAt}}</td>
<td><a href="/calls/{{.ID}}">Details</a></td>
</tr>{{else}}<tr><td colspan="{{len .Columns}}" class="empty">{{.Placeholder}}</td></tr>{{end}}
{{end}}</tbody>
</table>
{{template "footer" .}}{{end}}

{{define "call"}}{{template "header" .}}
{{with .CallDetail}}
<h1>Call {{.Row.CallID}}</h1>
<table>
<tr><th>Bill</th><td>{{.Row.BillRef}}</td></tr>
<tr><th>Phone</th><td>{{.Row.CustomerPhone}}</td></tr>
<tr><th>Status</th><td>{{template "badge" .Row.Status}}</td></tr>
<tr><th>Outcome</th><td>{{.Row.OutcomeLabel}}</td></tr>
<tr><th>Duration</th><td>{{.Row.Duration}}</td></tr>
<tr><th>Started</th><td>{{.StartedAt}}</td></tr>
<tr><th>Ended</th><td>{{.EndedAt}}</td></tr>
<tr><th>SMS Sent</th><td>{{if .SMSSent}}Yes{{else}}No{{end}}</td></tr>
{{if .RecordingURL}}<tr><th>Recording</th><td><a href="{{.RecordingURL}}">Listen</a></td></tr>{{end}}
{{if .ErrorMessage}}<tr><th>Error</th><td>{{.ErrorMessage}}</td></tr>{{end}}
</table>
{{if .Transcript}}<h2>Transcript</h2><pre>{{.Transcript}}</pre>{{end}}
{{end}}
<a href="/calls">Back to call logs</a>
{{template "footer" .}}{{end}}
`

const analyticsTemplate = `
{{define "analytics"}}{{template "header" .}}
<h1>Analytics</h1>
<div class="cards">
{{with .Analytics}}{{if .Unavailable}}<div class="card error">{{.Unavailable}}</div>{{else}}
<div class="card"><h3>Call Success Rate</h3><p>{{.CallSuccessRate}}</p></div>
<div class="card"><h3>Avg Call Duration</h3><p>{{.AvgCallDuration}}</p></div>
<div class="card"><h3>Payment Conversion</h3><p>{{.PaymentConversion}}</p></div>
<div class="card"><h3>Total Collection</h3><p>{{.TotalCollection}}</p></div>
{{end}}{{else}}<div class="card">No analytics available</div>{{end}}
</div>
{{template "footer" .}}{{end}}
`

const confirmTemplate = `
{{define "confirm"}}{{template "header" .}}
{{with .Confirm}}
<div class="card">
<p>{{.Prompt}}</p>
<form method="post" action="{{.Action}}">
<input type="hidden" name="confirmed" value="yes">
<input type="hidden" name="return" value="{{.Return}}">
<button type="submit">OK</button>
<a href="{{.Return}}">Cancel</a>
</form>
</div>
{{end}}
{{template "footer" .}}{{end}}
`

// parseTemplates builds the page template set
func parseTemplates() *template.Template {
	src := strings.Join([]string{
		layoutTemplate,
		dashboardTemplate,
		billsTemplate,
		callsTemplate,
		analyticsTemplate,
		confirmTemplate,
	}, "\n")
	return template.Must(template.New("pages").Parse(src))
}
