package agent

import (
	"context"

	"github.com/Schera-ole/jmx-telegraf/internal/endpoint"
	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// Endpoints resolves the targets named on the command line. Pids take
// precedence over the explicit server and port.
func (o *Options) Endpoints(ctx context.Context, resolver *endpoint.Resolver) []models.Endpoint {
	if o.PIDs != "" {
		return resolver.FromPIDs(ctx, o.PIDs)
	}
	return resolver.FromHostPort(o.Server, o.Port)
}
