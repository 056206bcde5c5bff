// Package service drives one polling run: it walks the endpoints in order,
// resolves the identity of each jvm and turns the metric list into output
// lines.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Schera-ole/jmx-telegraf/internal/config"
	internalerrors "github.com/Schera-ole/jmx-telegraf/internal/errors"
	"github.com/Schera-ole/jmx-telegraf/internal/jmx"
	models "github.com/Schera-ole/jmx-telegraf/internal/model"
	"github.com/Schera-ole/jmx-telegraf/internal/repository"
)

// Options are the run-wide naming and tagging settings.
type Options struct {
	// Hostname is the host tag of every line
	Hostname string

	// StaticTags are key=value tokens appended to every tag-set
	StaticTags []string

	// IndexUnmappedFields names the values of a multi-value attribute
	// without mapping <attr>_0, <attr>_1, ... instead of repeating <attr>
	IndexUnmappedFields bool
}

// Poller polls endpoints for the attributes of a metric list.
type Poller struct {
	connector jmx.Connector
	reader    *jmx.Reader
	storage   repository.Repository
	specs     []models.BeanAttributeSpec
	opts      Options
	logger    *zap.SugaredLogger
}

// NewPoller creates a Poller writing to storage.
func NewPoller(
	connector jmx.Connector,
	storage repository.Repository,
	specs []models.BeanAttributeSpec,
	opts Options,
	logger *zap.SugaredLogger,
) *Poller {

	return &Poller{
		connector: connector,
		reader:    jmx.NewReader(logger),
		storage:   storage,
		specs:     specs,
		opts:      opts,
		logger:    logger,
	}
}

// Run polls the endpoints one after another. Connection and identity
// failures only skip the endpoint; a configuration error, an output error
// or cancellation of ctx abort the run.
func (p *Poller) Run(ctx context.Context, endpoints []models.Endpoint) error {
	for _, ep := range endpoints {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ep.Absent() {
			continue
		}
		if err := p.PollEndpoint(ctx, ep); err != nil {
			return err
		}
	}
	return nil
}

// PollEndpoint emits the lines of a single endpoint. The connection is
// released before PollEndpoint returns.
func (p *Poller) PollEndpoint(ctx context.Context, ep models.Endpoint) error {
	conn := jmx.Open(ctx, p.connector, ep.URL, p.logger)
	if conn == nil {
		return nil
	}
	defer jmx.Release(conn, p.logger)

	identity, err := p.ResolveIdentity(ctx, conn)
	if err != nil {
		p.logger.Errorw("Skip this JMX", "url", ep.URL, "error", err)
		return nil
	}

	staticTags := jmx.JoinTags(p.opts.StaticTags, identity.Tags)
	written := 0
	for _, spec := range p.specs {
		n, err := p.processEntry(ctx, conn, identity, staticTags, spec)
		if err != nil {
			return err
		}
		written += n
	}

	p.logger.Infow("Endpoint polled",
		"url", ep.URL,
		"jvm_name", identity.ProcessName,
		"lines", written,
	)
	return nil
}

// ResolveIdentity reads the jvm name, the cluster node id and the
// system-property tags. Only the name is required.
func (p *Poller) ResolveIdentity(ctx context.Context, conn jmx.Connection) (models.IdentityContext, error) {
	var identity models.IdentityContext

	name, ok := p.reader.Read(ctx, conn, config.RuntimeBean, "Name")
	if !ok || len(name) == 0 {
		return identity, fmt.Errorf("%w: %s Name", internalerrors.ErrMissingIdentity, config.RuntimeBean)
	}
	identity.ProcessName = name[0].Raw

	if nodeID, ok := p.reader.Read(ctx, conn, config.ClusterBean, "LocalMemberId"); ok && len(nodeID) > 0 {
		identity.NodeID = nodeID[0].Raw
		identity.HasNodeID = true
	}

	if props, ok := p.reader.ReadRaw(ctx, conn, config.RuntimeBean, "SystemProperties"); ok {
		identity.Tags = jmx.SystemPropertyTags(props)
	}
	return identity, nil
}

func (p *Poller) processEntry(
	ctx context.Context,
	conn jmx.Connection,
	identity models.IdentityContext,
	staticTags string,
	spec models.BeanAttributeSpec,
) (int, error) {

	bean := spec.Bean
	if spec.HasPlaceholder() {
		if !identity.HasNodeID {
			return 0, nil
		}
		bean = strings.ReplaceAll(bean, config.Placeholder, identity.NodeID)
	}

	tags := jmx.BuildTags(identity.ProcessName, bean, spec.Attribute, p.opts.Hostname, staticTags)

	values, ok := p.reader.Read(ctx, conn, bean, spec.Attribute)
	if !ok {
		return 0, nil
	}

	names, err := FieldNames(spec, len(values), p.opts.IndexUnmappedFields)
	if err != nil {
		return 0, err
	}

	for i, v := range values {
		line := models.OutputLine{Tags: tags, Field: names[i], Value: v}
		if err := p.storage.WriteLine(line); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

// FieldNames returns the field name of each of the count values of spec.
// A mapping whose length differs from count is a configuration error.
func FieldNames(spec models.BeanAttributeSpec, count int, indexUnmapped bool) ([]string, error) {
	if spec.Mapped() {
		if len(spec.Fields) != count {
			return nil, fmt.Errorf("%w: line %d (%s;%s): %d field names for %d values",
				internalerrors.ErrFieldMappingMismatch, spec.Line, spec.Bean, spec.Attribute, len(spec.Fields), count)
		}
		return spec.Fields, nil
	}

	names := make([]string, count)
	for i := range names {
		if indexUnmapped && count > 1 {
			names[i] = fmt.Sprintf("%s_%d", spec.Attribute, i)
		} else {
			names[i] = spec.Attribute
		}
	}
	return names, nil
}
