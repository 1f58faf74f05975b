package results

import (
	"io"
	"strconv"

	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
	"github.com/cloud-bulldozer/bench-combine/pkg/logging"
	"github.com/olekukonko/tablewriter"
)

// Count is the number of combined rows for one benchmark and tracking mode.
type Count struct {
	Name    string
	Mode    string
	Samples int
}

// Counts groups the rows of f by key and modeColumn, in order of first
// appearance. An empty modeColumn, or one f does not carry, groups by key only.
func Counts(f *frame.Frame, key, modeColumn string) []Count {
	var counts []Count
	pos := map[[2]string]int{}
	ki, mi := f.Index(key), f.Index(modeColumn)
	if ki < 0 {
		return nil
	}
	for _, row := range f.Rows {
		k := [2]string{row[ki], ""}
		if mi >= 0 {
			k[1] = row[mi]
		}
		i, ok := pos[k]
		if !ok {
			i = len(counts)
			pos[k] = i
			counts = append(counts, Count{Name: k[0], Mode: k[1]})
		}
		counts[i].Samples++
	}
	return counts
}

// Method to init common table structure.
func initTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	return table
}

// ShowSummary renders the number of appended samples per benchmark and mode.
func ShowSummary(w io.Writer, f *frame.Frame, key, modeColumn string) {
	counts := Counts(f, key, modeColumn)
	if len(counts) == 0 {
		logging.Info("😥 No benchmark matched between counts and timing reports")
		return
	}
	logging.Debug("Rendering combine summary")
	table := initTable(w, []string{"Result Type", "Benchmark", "Mode", "Samples"})
	total := 0
	for _, c := range counts {
		mode := c.Mode
		if mode == "" {
			mode = "-"
		}
		table.Append([]string{"📊 Combined Rows", c.Name, mode, strconv.Itoa(c.Samples)})
		total += c.Samples
	}
	table.SetFooter([]string{"", "", "Total", strconv.Itoa(total)})
	table.Render()
}
