package server

import (
	"errors"
	"fmt"

	"github.com/NeuralTrust/AgeLock/pkg/config"
	"github.com/NeuralTrust/AgeLock/pkg/infra/prometheus"
	"github.com/NeuralTrust/AgeLock/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	APIServer struct {
		*BaseServer
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	prometheus.Initialize(prometheus.MetricsConfig{
		EnableDecisions: di.Config.Metrics.EnableDecisions,
		EnableHTTP:      di.Config.Metrics.EnableHTTP,
		EnableProfile:   di.Config.Metrics.EnableProfile,
	})

	s := &APIServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	s.WithRouters(di.Routers...)
	return s
}

func (s *APIServer) Run() error {
	s.startMetrics()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting API server")
	return s.Router.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	return errors.Join(s.Router.Shutdown(), s.shutdownMetrics())
}
