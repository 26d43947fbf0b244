package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

const baseline = "std"

// writeReport prints one block per payload. Ratios compare each codec to
// encoding/json and are blank when it was not measured.
func writeReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "instance\tcodec\tbytes\tencode/op\tdecode/op\tencode x std\tdecode x std\t")

	for start := 0; start < len(results); {
		end := start
		for end < len(results) && results[end].Instance == results[start].Instance {
			end++
		}
		group := results[start:end]
		var base *Result
		for i := range group {
			if group[i].Codec == baseline {
				base = &group[i]
			}
		}
		for _, r := range group {
			encRatio, decRatio := "-", "-"
			if base != nil {
				encRatio = ratio(r.Encode, base.Encode)
				decRatio = ratio(r.Decode, base.Decode)
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t\n",
				r.Instance, r.Codec, r.Bytes, r.Encode, r.Decode, encRatio, decRatio)
		}
		start = end
	}
	return tw.Flush()
}

func ratio(a, b time.Duration) string {
	if b <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", float64(a)/float64(b))
}
