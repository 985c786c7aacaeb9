package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

type WorkerStat struct {
	// The worker id.
	Id string

	// Relative computation speed; used by schedulers when no previous
	// frame timing is available.
	SpeedEstimate float32

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// A unique id for the rendered frame.
	FrameID uuid.UUID

	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Format stats as a table.
func (s FrameStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Block height", "% of frame", "Render time"})
	for _, stat := range s.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{s.FrameID.String(), "", "TOTAL", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
