// Package metrics provides per-cycle quality measures for a control run.
//
// Every metric implements [pipeline.Metric]: it observes each completed
// cycle and reports a single scalar.
package metrics
