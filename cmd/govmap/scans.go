package main

import (
	"fmt"

	"github.com/fwojciec/govmap"
)

// Run executes the scans command: list stored scan summaries, newest
// first.
func (c *ScansCmd) Run(deps *Dependencies) error {
	scans, err := deps.Scans.FindScans(deps.Ctx, govmap.ScanFilter{Limit: c.Limit})
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans stored. Run 'govmap scan' to create one.")
		return nil
	}

	for _, scan := range scans {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages, %d sections\n",
			scan.ID,
			scan.CreatedAt.Format("2006-01-02 15:04"),
			scan.Metadata.TotalPages,
			scan.Metadata.SectionsCovered,
		)
	}
	return nil
}
