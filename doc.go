// Package telegrafjmx polls Java management beans and writes them as
// Telegraf input lines.
//
// A run reads a metric list, resolves the management agents to poll and
// writes one line per value to the output file:
//
//	jmx,jvm_name=myapp,host=myhost,type=Memory,domain=java.lang,attr=HeapMemoryUsage used=1024
//
// Each metric list entry has the form
//
//	beanId;attributeName[;field1,field2,...]
//
// Composite and tabular attribute values are flattened in order; the
// optional field list names the flattened values. A bean id may contain
// the <changeme> placeholder, replaced by the Coherence node id of the jvm.
//
// Agents are given either as a host and port or as a list of process ids,
// in which case the Jolokia -javaagent option of each process is read.
//
// Features:
//   - Jolokia HTTP transport with optional basic authentication
//   - Tags derived from the object name and from jvm system properties
//   - Static tags and host label from a YAML file or the environment
//   - Structured logging to a rotated file
//
// The agent is run by Telegraf's exec input; see cmd/agent.
package telegrafjmx
