package game

import "log/slog"

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame, g.session.Field().Values())
	g.lastField = stats.Field()
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
