package grpc_server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// DashboardService is the name the health server reports for the dashboard.
const DashboardService = "learnhub.Dashboard"

// HealthServer wraps the standard gRPC health service so the process can
// flip to NOT_SERVING before it stops accepting connections.
type HealthServer struct {
	grpc   *grpc.Server
	health *health.Server
}

func NewHealthServer() *HealthServer {
	s := grpc.NewServer()
	h := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, h)
	reflection.Register(s)

	h.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	h.SetServingStatus(DashboardService, grpc_health_v1.HealthCheckResponse_SERVING)

	return &HealthServer{grpc: s, health: h}
}

func (s *HealthServer) Server() *grpc.Server {
	return s.grpc
}

// Shutdown marks every service NOT_SERVING and drains in-flight calls.
func (s *HealthServer) Shutdown() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
