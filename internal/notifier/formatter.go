package notifier

import (
	"fmt"
	"html"
	"strings"

	"BreakoutSniper/internal/model"
)

// FormatSubject builds the report subject line from the run result.
func FormatSubject(summary *model.RunSummary) string {
	hits := len(summary.Candidates)
	if !summary.TideHealthy {
		return fmt.Sprintf("Bear Scan: %d Hits", hits)
	}
	return fmt.Sprintf("Sniper Report: %d Hits", hits)
}

// FormatScanReport renders the full HTML report: diagnostic funnel,
// execution log, ranked hits, and the current portfolio.
func FormatScanReport(summary *model.RunSummary, positions []model.Position, runAt string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h3>Run Complete (%s)</h3>\n", html.EscapeString(runAt)))
	b.WriteString(fmt.Sprintf("<p><b>Market Tide:</b> %s</p>\n", html.EscapeString(summary.TideStatus)))

	st := summary.Stats
	b.WriteString(`<div style="background: #f9f9f9; padding: 15px; border: 1px solid #ddd;">` + "\n")
	b.WriteString("<h4 style=\"margin-top: 0;\">Diagnostic Funnel</h4>\n<ul style=\"margin-bottom: 0;\">\n")
	b.WriteString(fmt.Sprintf("<li><b>Attempted:</b> %d tickers</li>\n", st.Attempted))
	b.WriteString(fmt.Sprintf("<li><b>Valid Series:</b> %d</li>\n", st.ValidSeries))
	b.WriteString(fmt.Sprintf("<li><b>Passed Liquidity Check:</b> %d</li>\n", st.PassedLiquidity))
	b.WriteString(fmt.Sprintf("<li><b>Passed Trend Check:</b> %d</li>\n", st.PassedTrend))
	b.WriteString(fmt.Sprintf("<li><b>Passed Backtest:</b> %d</li>\n", st.PassedBacktest))
	b.WriteString("</ul>\n</div>\n<hr>\n")

	b.WriteString("<h4>Execution Log</h4>\n<pre>")
	if summary.Blocked {
		b.WriteString(html.EscapeString("BLOCKED: " + summary.BlockedReason))
		b.WriteString("\n")
	}
	if len(summary.ExecutionLog) == 0 && !summary.Blocked {
		b.WriteString("No new setups.")
	}
	for _, line := range summary.ExecutionLog {
		b.WriteString(html.EscapeString(line))
		b.WriteString("\n")
	}
	b.WriteString("</pre>\n<hr>\n")

	b.WriteString("<h4>Scanner Results</h4>\n")
	if len(summary.Candidates) == 0 {
		b.WriteString("<p>No hits found.</p>\n")
	} else {
		b.WriteString("<table border=\"1\" cellpadding=\"4\">\n")
		b.WriteString("<tr><th>Ticker</th><th>Win Rate</th><th>Price</th></tr>\n")
		for _, c := range summary.Candidates {
			b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.1f%%</td><td>$%.2f</td></tr>\n",
				html.EscapeString(c.Symbol), c.WinRate, c.Price))
		}
		b.WriteString("</table>\n")
	}
	b.WriteString("<hr>\n<h4>Current Portfolio</h4>\n")
	if len(positions) == 0 {
		b.WriteString("<p>No positions.</p>\n")
	} else {
		b.WriteString("<table border=\"1\" cellpadding=\"4\">\n")
		b.WriteString("<tr><th>Symbol</th><th>Qty</th><th>P/L</th></tr>\n")
		for _, p := range positions {
			b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.0f</td><td>$%.2f</td></tr>\n",
				html.EscapeString(p.Symbol), p.Quantity, p.UnrealizedPL))
		}
		b.WriteString("</table>\n")
	}

	if len(summary.Errors) > 0 {
		b.WriteString("<hr>\n<h4>Errors</h4>\n<pre>")
		for _, e := range summary.Errors {
			b.WriteString(html.EscapeString(e))
			b.WriteString("\n")
		}
		b.WriteString("</pre>\n")
	}
	return b.String()
}
