// Package middleware provides observability middleware for editor sessions.
//
// This package includes:
//   - OpenTelemetry tracing around event dispatch and document commits
//   - Prometheus metrics for events, sessions and commits
//
// # OpenTelemetry Middleware
//
// Every dispatched event gets a span carrying the session ID, the event type
// and the target HID. The handler sees the span through the event context,
// so commits made by the handler are traced as children of the event:
//
//	srv := server.New(server.Config{
//	    Middleware: []server.Middleware{middleware.OpenTelemetry()},
//	    OnCommit:   middleware.TraceCommit(save),
//	})
//
// The tracer comes from the global provider; configure it in main().
//
// # Prometheus Metrics
//
// NewMetrics registers:
//   - jsonedit_events_total: events processed by type and status
//   - jsonedit_event_duration_seconds: event processing duration histogram
//   - jsonedit_event_errors_total: failed events by type and error category
//   - jsonedit_active_sessions: current number of sessions
//   - jsonedit_commits_total: committed root values by status
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	srv := server.New(server.Config{
//	    Middleware:      []server.Middleware{m.Middleware()},
//	    OnSessionCreate: m.SessionCreated,
//	    OnSessionClose:  m.SessionClosed,
//	})
package middleware
