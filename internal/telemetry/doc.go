// Package telemetry publishes wheel commands and pose estimates to an
// MQTT broker.
//
// A [Sink] observes the control pipeline and forwards every completed cycle
// through a [Publisher]. Publishing happens after the cycle has been
// computed, so a slow or failing broker never changes the command.
package telemetry
