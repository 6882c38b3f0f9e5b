// timelog - Time Log Statistics
//
// timelog reads plain-text work logs of dates, clock-in/clock-out pairs and
// task notes, and reports the time spent: totals, per-day mean and median,
// and the longest session.
package main

import (
	"os"

	"github.com/ccollicutt/timelog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
