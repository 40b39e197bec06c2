package main

import (
	"fmt"
	"io"
	"time"

	"sysyc/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	rows := []struct {
		label string
		stage buildpipeline.Stage
	}{
		{"parsed", buildpipeline.StageParse},
		{"lowered", buildpipeline.StageLower},
		{"emitted", buildpipeline.StageCodegen},
		{"wrote", buildpipeline.StageWrite},
	}
	for _, row := range rows {
		if !timings.Has(row.stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", row.label, toMillis(timings.Duration(row.stage)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
