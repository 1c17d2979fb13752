// Package grpc exposes the standard gRPC health service for the productos service.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the productos API.
const ServiceName = "productos"

// Probe checks a dependency the service needs to answer requests.
type Probe func(ctx context.Context) error

// HealthServer is a grpc_health_v1 server whose Check runs the probe for ServiceName.
type HealthServer struct {
	*health.Server
	probe Probe
}

var _ healthpb.HealthServer = (*HealthServer)(nil)

// NewHealthServer creates a HealthServer with ServiceName and the overall server marked SERVING.
func NewHealthServer(probe Probe) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return &HealthServer{Server: hs, probe: probe}
}

// Register registers the health service on s.
func (h *HealthServer) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h)
}

// Check reports NOT_SERVING for ServiceName when the probe fails, otherwise the stored status.
func (h *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	resp, err := h.Server.Check(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.GetService() == ServiceName && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING && h.probe != nil {
		if probeErr := h.probe(ctx); probeErr != nil {
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
	}
	return resp, nil
}
