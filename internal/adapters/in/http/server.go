// Package http exposes the checkout helpers over HTTP with echo: shipping quotes, cart evaluation,
// upload presigning, and the upload grant ledger.
package http

import (
	"log/slog"
	"net/http"

	"bloom/internal/core/application/usecases/commands"
	"bloom/internal/core/application/usecases/queries"
	"bloom/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	resolver queries.QuoteResolver
	logger   *slog.Logger

	// Command handlers
	issueUploadGrantHandler commands.IssueUploadGrantCommandHandler

	// Query handlers
	getShippingQuoteHandler     queries.GetShippingQuoteQueryHandler
	evaluateCartHandler         queries.EvaluateCartQueryHandler
	getOrderUploadGrantsHandler queries.GetOrderUploadGrantsQueryHandler
}

func NewServer(
	resolver queries.QuoteResolver,
	issueUploadGrantHandler commands.IssueUploadGrantCommandHandler,
	getShippingQuoteHandler queries.GetShippingQuoteQueryHandler,
	evaluateCartHandler queries.EvaluateCartQueryHandler,
	getOrderUploadGrantsHandler queries.GetOrderUploadGrantsQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		resolver:                    resolver,
		logger:                      logger.With("component", "http"),
		issueUploadGrantHandler:     issueUploadGrantHandler,
		getShippingQuoteHandler:     getShippingQuoteHandler,
		evaluateCartHandler:         evaluateCartHandler,
		getOrderUploadGrantsHandler: getOrderUploadGrantsHandler,
	}
}

// Register mounts every route on e.
// Register mounts the routes on e. Requests under /api/v1 are validated against the embedded OpenAPI document.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := LoadOpenAPI()
	if err != nil {
		return err
	}
	validate, err := RequestValidator(doc)
	if err != nil {
		return err
	}

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", validate)
	api.GET("/shipping/quotes/:postalCode", s.GetShippingQuote)
	api.POST("/cart/evaluate", s.EvaluateCart)
	api.POST("/uploads/presign", s.PresignUpload)
	api.GET("/uploads/:orderId", s.GetOrderUploads)
	return nil
}

func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetShippingQuote handles GET /api/v1/shipping/quotes/:postalCode. Malformed codes are not an
// error: they come back as a quote with valid=false.
func (s *Server) GetShippingQuote(ctx echo.Context) error {
	query := queries.NewGetShippingQuoteQuery(ctx.Param("postalCode"))

	quote, err := s.getShippingQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to resolve shipping", err)
	}
	return ctx.JSON(http.StatusOK, toQuoteResponse(quote))
}

// EvaluateCart handles POST /api/v1/cart/evaluate.
func (s *Server) EvaluateCart(ctx echo.Context) error {
	var payload cartPayload
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	c, err := payload.toCart(s.resolver)
	if err != nil {
		return badRequest(ctx, "Invalid cart: "+err.Error())
	}

	result, err := s.evaluateCartHandler.Handle(ctx.Request().Context(), queries.NewEvaluateCartQuery(c))
	if err != nil {
		return s.internalError(ctx, "Failed to evaluate cart", err)
	}

	resp := evaluationResponse{
		CanCheckout:      result.Verdict.CanCheckout(),
		BuyerOK:          result.Verdict.BuyerOK,
		BuyerIssues:      result.Verdict.BuyerIssues,
		BlockingMessages: result.Verdict.BlockingMessages,
		Lines:            make([]lineReport, 0, c.Len()),
		Totals: totalsResponse{
			Products:        result.Totals.Products.InexactFloat64(),
			Shipping:        result.Totals.Shipping.InexactFloat64(),
			Subtotal:        result.Totals.Subtotal.InexactFloat64(),
			IVA:             result.Totals.IVA.InexactFloat64(),
			Total:           result.Totals.Total.InexactFloat64(),
			PendingShipping: []int{},
		},
	}
	position := make(map[kernel.UUID]int, c.Len())
	for i, line := range c.Lines() {
		position[line.ID] = i + 1
		report := lineReport{
			Item:        i + 1,
			Issues:      result.Verdict.LineIssues[line.ID],
			LateWarning: result.LateWarnings[line.ID],
			Products:    result.Totals.Lines[i].Products.InexactFloat64(),
			ShippingFee: result.Totals.Lines[i].Shipping.InexactFloat64(),
		}
		if report.Issues == nil {
			report.Issues = []string{}
		}
		if line.Shipping != nil {
			q := toQuoteResponse(*line.Shipping)
			report.Shipping = &q
		}
		resp.Lines = append(resp.Lines, report)
	}
	for _, id := range result.Totals.PendingShipping {
		resp.Totals.PendingShipping = append(resp.Totals.PendingShipping, position[id])
	}

	return ctx.JSON(http.StatusOK, resp)
}

// PresignUpload handles POST /api/v1/uploads/presign.
func (s *Server) PresignUpload(ctx echo.Context) error {
	var req presignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewIssueUploadGrantCommand(req.Key, req.ContentType)
	if err != nil {
		return badRequest(ctx, "Invalid upload request: "+err.Error())
	}

	issued, err := s.issueUploadGrantHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.internalError(ctx, "Failed to presign upload", err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "upload presigned",
		"grantId", issued.GrantID.String(), "key", req.Key, "expiresAt", issued.ExpiresAt)
	return ctx.JSON(http.StatusOK, presignResponse{URL: issued.URL, ExpiresAt: issued.ExpiresAt})
}

// GetOrderUploads handles GET /api/v1/uploads/:orderId.
func (s *Server) GetOrderUploads(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderUploadGrantsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	grants, err := s.getOrderUploadGrantsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve uploads", err)
	}

	return ctx.JSON(http.StatusOK, toGrantResponses(grants))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: message})
}

func (s *Server) internalError(ctx echo.Context, message string, cause error) error {
	s.logger.ErrorContext(ctx.Request().Context(), message,
		"method", ctx.Request().Method, "path", ctx.Path(), "error", cause)
	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
