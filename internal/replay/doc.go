// Package replay drives a control pipeline from recorded sensor data.
//
// Recordings are YAML files holding one entry per control cycle. A cycle
// with a non-positive time step is skipped with a warning and the pipeline
// keeps its previous pose and controller memory.
package replay
