package server

import "provider_map/pkg/httpx/reply"

// Server groups the per-resource HTTP servers. Debug exposes internal error
// text in failure envelopes.
type Server struct {
	ProviderServer
	CategoryServer

	Debug bool
}

func NewServer(
	providerServer ProviderServer,
	categoryServer CategoryServer,
	debug bool,
) Server {
	return Server{
		ProviderServer: providerServer,
		CategoryServer: categoryServer,
		Debug:          debug,
	}
}

func (s Server) failure(message string) []reply.Option {
	return []reply.Option{
		reply.WithMessage(message),
		reply.WithDebug(s.Debug),
	}
}
