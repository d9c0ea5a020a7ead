package server

import (
	"fmt"
	"net"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/serializer"
	"github.com/kfdigitals/battedball/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("server")

// NewAPIServer creates a new API server
// It takes a config, the query service, a transport and a serializer as parameters
//
// Usage:
//
//	s := server.NewAPIServer(
//		*config,
//		query.NewQueryService(dataset.Load(loaderConfig)),
//		http.NewHttpServerTransport(metrics.NewSet()),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	 }
func NewAPIServer(
	config common.ServerConfig,
	service query.IQueryService,
	transport transport.IAPIServerTransport,
	serializer serializer.IAPISerializer,
) apiServer {
	Logger.Infof("Created API Server")
	Logger.Infof(config.String())

	return apiServer{
		config:     config,
		service:    service,
		transport:  transport,
		serializer: serializer,
		adapter:    NewQueryServerAdapter(config.StrictParams),
	}
}

type apiServer struct {
	config     common.ServerConfig
	service    query.IQueryService
	transport  transport.IAPIServerTransport
	serializer serializer.IAPISerializer
	adapter    IAPIServerAdapter
}

func (s *apiServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(req *common.Request) (int, string, []byte) {
		resp := s.handle(req)

		// Serialize the payload
		body, err := s.serializer.Serialize(resp.Payload)
		if err != nil {
			resp = common.NewErrorResponse(
				http.StatusInternalServerError,
				query.NewError(query.RetCQueryError, fmt.Sprintf("failed to serialize response: %s", err)).Error(),
			)
			body, _ = s.serializer.Serialize(resp.Payload)
		}
		return resp.Status, s.serializer.ContentType(), body
	})
}

// handle lets the adapter answer the request, converting a panic into a QueryError response
func (s *apiServer) handle(req *common.Request) (resp *common.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger.Errorf("[%s] panic while handling %s: %v", req.RequestID, req.Route, rec)
			err := query.NewError(query.RetCQueryError, fmt.Sprintf("%v", rec))
			resp = common.NewErrorResponse(http.StatusInternalServerError, err.Error())
		}
	}()
	return s.adapter.Handle(req, s.service)
}

func (s *apiServer) init() {
	health := s.service.Health()
	if !health.DataLoaded {
		Logger.Warningf("no data loaded, /api routes will answer with errors")
	} else {
		Logger.Infof("serving %d batted balls", health.Rows)
	}

	s.registerTransportHandler()
}

// Serve starts the API server on the configured endpoint
func (s *apiServer) Serve() error {
	s.init()
	return s.transport.Listen(s.config)
}

// ServeListener starts the API server on an existing listener
func (s *apiServer) ServeListener(listener net.Listener) error {
	s.init()
	return s.transport.Serve(listener, s.config)
}

// Close stops the transport
func (s *apiServer) Close() error {
	return s.transport.Close()
}

// RegisterMetrics exposes the dataset state on set
func RegisterMetrics(set *metrics.Set, service query.IQueryService) {
	set.NewGauge("battedball_dataset_rows", func() float64 {
		return float64(service.Health().Rows)
	})
	set.NewGauge("battedball_dataset_loaded", func() float64 {
		if service.Health().DataLoaded {
			return 1
		}
		return 0
	})
}
