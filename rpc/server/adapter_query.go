package server

import (
	"fmt"
	"net/http"

	"github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/common"
)

// NewQueryServerAdapter creates the adapter serving the batted-ball routes.
// With strictParams set, malformed numeric filters are rejected with 400
// instead of being ignored.
func NewQueryServerAdapter(strictParams bool) IAPIServerAdapter {
	return &queryServerAdapterImpl{strictParams: strictParams}
}

type queryServerAdapterImpl struct {
	strictParams bool
}

func (adapter *queryServerAdapterImpl) Handle(req *common.Request, service query.IQueryService) *common.Response {
	// Check for nil service
	if service == nil {
		return common.NewErrorResponse(http.StatusInternalServerError, "handler: query service is nil")
	}

	switch req.Route {
	case common.RouteHealth:
		return common.NewHealthResponse(service.Health().DataLoaded)

	case common.RouteData:
		filters, err := query.ParseFilters(req.Params)
		if err != nil {
			// an unloaded table takes precedence over parameter errors
			if adapter.strictParams && service.Health().DataLoaded {
				return common.NewErrorResponse(http.StatusBadRequest, err.Error())
			}
			Logger.Debugf("[%s] ignoring filters: %v", req.RequestID, err)
		}
		rows, err := service.ListRows(filters)
		if err != nil {
			return errorResponse(req, err)
		}
		return common.NewOKResponse(rows)

	case common.RouteSummary:
		summary, err := service.Summarize()
		if err != nil {
			return errorResponse(req, err)
		}
		return common.NewOKResponse(summary)

	default:
		return common.NewErrorResponse(
			http.StatusNotFound,
			fmt.Sprintf("unsupported route: %s", req.Route),
		)
	}
}

// errorResponse maps every error kind to a 500 with the error message.
func errorResponse(req *common.Request, err error) *common.Response {
	Logger.Warningf("[%s] %s failed (%s): %v", req.RequestID, req.Route, query.CodeOf(err), err)
	return common.NewErrorResponse(http.StatusInternalServerError, err.Error())
}
