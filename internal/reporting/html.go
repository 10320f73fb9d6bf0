package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/datalint/datalint/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>datalint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Records: %d &nbsp; Findings: %d</p>", run.Summary.Records, len(run.Findings))
	fmt.Fprintf(f, "<p><b>Breakdown</b>: empty=%d &nbsp; invalid numeric=%d",
		run.Summary.EmptyValues, run.Summary.InvalidNumerics)
	if run.Summary.Waived > 0 {
		fmt.Fprintf(f, " &nbsp; waived=%d", run.Summary.Waived)
	}
	fmt.Fprint(f, "</p>")
	fmt.Fprintf(f, "<p class='dim'>Scan durations: empty=%dms, numeric=%dms</p>",
		run.Summary.EmptyMS, run.Summary.NumericMS)
	if run.Source != "" {
		fmt.Fprintf(f, "<p class='dim'>Source: <span class='mono'>%s</span>", html.EscapeString(run.Source))
		if run.SchemaSrc != "" {
			fmt.Fprintf(f, " &nbsp; Schema: <span class='mono'>%s</span>", html.EscapeString(run.SchemaSrc))
		}
		fmt.Fprint(f, "</p>")
	}

	// All findings
	if len(run.Findings) > 0 {
		fmt.Fprint(f, "<h2>All Findings</h2><table><tr><th>Check</th><th>Index</th><th>Key</th><th>Value</th><th>Message</th></tr>")
		for _, fd := range run.Findings {
			fmt.Fprintf(f, "<tr><td>%s</td><td>%d</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%s</td></tr>",
				html.EscapeString(fd.Check),
				fd.Index,
				html.EscapeString(fd.Key),
				html.EscapeString(fd.Value),
				html.EscapeString(fd.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Findings</h2><p class='dim'>No findings. The data set passed both checks.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
