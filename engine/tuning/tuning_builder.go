package tuning

import "go.uber.org/zap"

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*Server)

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) ServerBuilderOption {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) ServerBuilderOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}
