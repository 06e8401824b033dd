package cli

import (
	"context"
	"fmt"
)

// formatHours renders seconds as H:MM.
func formatHours(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/3600, seconds%3600/60)
}

func (a *App) Report(ctx context.Context, args []string) error {
	month := ""
	if len(args) > 0 {
		month = args[0]
	}

	report, err := a.api.MonthlyReport(ctx, month)
	if err != nil {
		return err
	}

	printlnFn("Report for", report.Month)
	var totalNet int64
	for _, row := range report.Rows {
		if row.SessionID == nil {
			continue
		}
		start, end := "-", "-"
		if row.StartAt != nil {
			start = *row.StartAt
		}
		if row.EndAt != nil {
			end = *row.EndAt
		}
		printlnFn(fmt.Sprintf("%s  %s .. %s  work %s  break %s  net %s",
			row.WorkDate, start, end,
			formatHours(row.WorkSeconds), formatHours(row.BreakSeconds), formatHours(row.NetSeconds)))
		totalNet += row.NetSeconds
	}
	printlnFn("Total net:", formatHours(totalNet))
	return nil
}
