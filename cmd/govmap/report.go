package main

import (
	"fmt"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/report"
)

// Run executes the report command: render a markdown report for a
// stored scan.
func (c *ReportCmd) Run(deps *Dependencies) error {
	scan, err := deps.Scans.FindScanByID(deps.Ctx, c.ID)
	if err != nil {
		if govmap.ErrorCode(err) == govmap.ENOTFOUND {
			return fmt.Errorf("scan %q not found. Run 'govmap scans' to list stored scans", c.ID)
		}
		return err
	}
	return report.NewWriter(deps.Stdout).Write(scan)
}
