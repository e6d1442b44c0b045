package generator

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/scaffold/internal/observability"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
)

// exitLogEntry is one queued end-of-run message.
type exitLogEntry struct {
	pluginID string
	message  string
	severity plugin.LogSeverity
}

// flushExitLogs drains the queue in insertion order, mapping each severity
// to a concrete log action. An unrecognized severity is reported as an error
// referencing the plugin's short ID, and the message itself still surfaces
// through the error channel.
func (g *Generator) flushExitLogs(ctx context.Context) {
	for _, entry := range g.exitLogs {
		entryCtx := observability.WithPluginID(ctx, entry.pluginID)
		switch entry.severity {
		case plugin.SeverityLog, plugin.SeverityInfo:
			observability.InfoContext(entryCtx, entry.message)
		case plugin.SeverityDone:
			observability.InfoContext(entryCtx, entry.message, slog.String("status", "done"))
		case plugin.SeverityWarn:
			observability.WarnContext(entryCtx, entry.message)
		case plugin.SeverityError:
			observability.ErrorContext(entryCtx, entry.message)
		default:
			observability.ErrorContext(entryCtx, "unrecognized exit log severity",
				slog.String("severity", string(entry.severity)),
				slog.String("plugin", plugin.ShortID(entry.pluginID)))
			observability.ErrorContext(entryCtx, entry.message)
		}
	}
	g.exitLogs = nil
}
