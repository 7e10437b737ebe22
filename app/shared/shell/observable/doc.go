// Package observable wraps command and query handlers with metrics, tracing and logging,
// so that the handlers in the feature packages keep only the lending workflow.
//
// The wrappers are applied at wiring time, not inside the handler constructors:
//
//	coreHandler, err := leasebookitem.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[leasebookitem.Command, leasebookitem.Result](
//		coreHandler,
//		observable.WithCommandMetrics[leasebookitem.Command, leasebookitem.Result](metricsCollector),
//		observable.WithCommandTracing[leasebookitem.Command, leasebookitem.Result](tracingCollector),
//		observable.WithCommandContextualLogging[leasebookitem.Command, leasebookitem.Result](contextualLogger),
//	)
//
// Tests of the lending rules use the core handlers directly.
package observable
