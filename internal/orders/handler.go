package orders

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/kasunkula/middys-assignment/internal/api/v1"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
	httperr "github.com/kasunkula/middys-assignment/internal/core/errors"
	"github.com/kasunkula/middys-assignment/internal/metrics"

	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgAddFailed      = "Failed to add order"
)

// orderError carries the structured HTTP error shape from a helper back to the handler.
// noBody writes the status alone.
type orderError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
	noBody     bool
}

func (e *orderError) Error() string {
	return e.message
}

// AddOrderHandler handles POST /v1/orders.
//
//	201 order accepted into the window
//	204 order too old to count, silently dropped
//	400 malformed body or missing field
//	413 body over the configured limit
//	422 unparseable amount or timestamp, or a timestamp in the future
func (s *Service) AddOrderHandler(c *gin.Context) {
	req, err := s.parseRequest(c)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeError(c, err)
		return
	}

	order, perr := parseOrder(req)
	if perr != nil {
		slog.Warn("Unprocessable order", "error", perr)
		metrics.OrdersTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeError(c, &orderError{
			statusCode: http.StatusUnprocessableEntity,
			errorType:  httperr.HttpInvalidOrderError,
			message:    perr.Error(),
		})
		return
	}

	now := s.nowFn()
	if err := s.addOrder(order, now.UnixMilli()); err != nil {
		writeError(c, err)
		return
	}

	metrics.OrdersTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	if !s.recorder.RecordOrder(order, now) {
		slog.Debug("Order not journaled", "order_timestamp", order.Timestamp)
	}

	c.Status(http.StatusCreated)
}

// DeleteOrdersHandler handles DELETE /v1/orders by emptying every bucket.
func (s *Service) DeleteOrdersHandler(c *gin.Context) {
	s.store.DeleteAll()
	metrics.ClearsTotal.Inc()
	slog.Info("All orders deleted")

	s.recorder.RecordClear(s.nowFn())

	c.Status(http.StatusNoContent)
}

// parseRequest reads the bounded request body and binds it into an OrderRequest.
func (s *Service) parseRequest(c *gin.Context) (*v1.OrderRequest, *orderError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, &orderError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &orderError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req v1.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, &orderError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	if err := req.Validate(); err != nil {
		slog.Warn("Order validation failed", "error", err)
		return nil, &orderError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}

	return &req, nil
}

// addOrder hands the order to the engine and maps its rejections to HTTP outcomes.
func (s *Service) addOrder(o aggregation.Order, nowMs int64) *orderError {
	err := s.store.AddOrder(o, nowMs)
	switch {
	case err == nil:
		return nil

	case errors.Is(err, aggregation.ErrOldOrder):
		slog.Info("Order older than the window dropped", "error", err)
		metrics.OrdersTotal.WithLabelValues(metrics.OutcomeStale).Inc()
		return &orderError{statusCode: http.StatusNoContent, noBody: true}

	case errors.Is(err, aggregation.ErrFutureOrder):
		slog.Warn("Order from the future rejected", "error", err)
		metrics.OrdersTotal.WithLabelValues(metrics.OutcomeFuture).Inc()
		return &orderError{
			statusCode: http.StatusUnprocessableEntity,
			errorType:  httperr.HttpFutureOrderError,
			message:    err.Error(),
		}

	default:
		slog.Error("Failed to add order", "error", err)
		return &orderError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgAddFailed,
		}
	}
}

// writeError serializes an orderError as the HTTP response.
func writeError(c *gin.Context, err *orderError) {
	if err.noBody {
		c.Status(err.statusCode)
		return
	}
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
