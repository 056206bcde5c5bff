// Package config provides the process-wide configuration and the constants
// shared by the poller components.
package config

const (
	// TagMarker is the first token of every emitted tag-set.
	TagMarker = "jmx"

	// Placeholder is replaced with the cluster node id of the endpoint.
	Placeholder = "<changeme>"

	// RuntimeBean exposes the jvm name and its system properties.
	RuntimeBean = "java.lang:type=Runtime"

	// ClusterBean exposes the Coherence member id of the jvm.
	ClusterBean = "Coherence:type=Cluster"
)
