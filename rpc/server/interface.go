package server

import (
	"github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/common"
)

// IAPIServerAdapter is the interface for all API server adapters
// It is responsible for turning requests into responses
type IAPIServerAdapter interface {
	// Handle handles a request and returns a response
	// It takes a Request and the query service as parameters.
	// If an error occurs, it should be returned as an error response
	Handle(req *common.Request, service query.IQueryService) (resp *common.Response)
}
