// Package models defines the data structures used throughout the poller.
package models

import (
	"strings"

	"github.com/Schera-ole/jmx-telegraf/internal/config"
)

// Endpoint identifies one target jvm.
type Endpoint struct {
	// URL is the management agent URL; empty when resolution failed
	URL string

	// PID is the process identifier the URL was resolved from, if any
	PID string
}

// Absent reports whether the endpoint could not be resolved.
func (e Endpoint) Absent() bool {
	return e.URL == ""
}

// BeanAttributeSpec is one entry of the metric list.
type BeanAttributeSpec struct {
	// Bean is the object name, possibly containing the node id placeholder
	Bean string

	// Attribute is the attribute to read from the bean
	Attribute string

	// Fields names the flattened values; nil when the entry has no mapping
	Fields []string

	// Line is the 1-based line number in the metric list
	Line int
}

// HasPlaceholder reports whether the bean needs the cluster node id.
func (s BeanAttributeSpec) HasPlaceholder() bool {
	return strings.Contains(s.Bean, config.Placeholder)
}

// Mapped reports whether the entry carries a field-name mapping.
func (s BeanAttributeSpec) Mapped() bool {
	return s.Fields != nil
}

// IdentityContext holds the per-endpoint facts read before the metric list.
type IdentityContext struct {
	ProcessName string
	NodeID      string
	HasNodeID   bool

	// Tags are key=value tokens derived from the jvm system properties
	Tags []string
}

// OutputLine is one emitted record.
type OutputLine struct {
	Tags  string
	Field string
	Value MetricValue
}

// String renders the line without the trailing newline.
func (l OutputLine) String() string {
	return l.Tags + " " + l.Field + "=" + l.Value.Format()
}
