// Package metrics instruments the minimisation driver with Prometheus
// collectors.
//
// A Recorder satisfies minimise.Recorder. Pass it as Options.Recorder and
// every finished optimisation instance updates
//
//	modelfree_instances_total{op,model_type,outcome}
//	modelfree_iterations_total{op,model_type}
//	modelfree_function_evaluations_total{op,model_type}
//	modelfree_warnings_total{op,model_type,warning}
//	modelfree_instance_duration_seconds{op,model_type}
//	modelfree_chi2{op,model_type}
//
// The warning label takes one of max_iter, mu_too_small, not_optimised or
// other (see WarningLabel).
//
// Collectors live on the Recorder's own registry, so several recorders can
// coexist. WriteTextfile dumps the registry in the node exporter textfile
// format for batch runs.
package metrics
