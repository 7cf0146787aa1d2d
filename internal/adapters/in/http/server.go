// Package http exposes the marketplace operations over HTTP. Handlers bind
// the transport payload, build a validated command or query, dispatch it to
// the application layer and translate domain errors to status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity headers. Authentication happens upstream; these carry the
// already-authenticated identity into the commands.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// Handlers bundles the application handlers the server dispatches to.
type Handlers struct {
	CreateRequest          commands.CreateRequestCommandHandler
	PublishRequest         commands.PublishRequestCommandHandler
	CancelRequest          commands.CancelRequestCommandHandler
	DeclareAvailability    commands.DeclareAvailabilityCommandHandler
	SubmitBid              commands.SubmitBidCommandHandler
	AcceptBid              commands.AcceptBidCommandHandler
	RejectBid              commands.RejectBidCommandHandler
	WithdrawBid            commands.WithdrawBidCommandHandler
	StartTransit           commands.StartTransitCommandHandler
	HandoverAtRelay        commands.HandoverAtRelayCommandHandler
	AcknowledgePickup      commands.AcknowledgePickupCommandHandler
	GenerateValidationCode commands.GenerateValidationCodeCommandHandler
	ValidateDelivery       commands.ValidateDeliveryCommandHandler
	CancelDelivery         commands.CancelDeliveryCommandHandler
	RecordEarning          commands.RecordEarningCommandHandler
	RecordCommission       commands.RecordCommissionCommandHandler
	ReverseEntry           commands.ReverseEntryCommandHandler
	CloseBillingPeriod     commands.CloseBillingPeriodCommandHandler
	IssueInvoice           commands.IssueInvoiceCommandHandler

	GetCandidates    queries.GetCandidatesQueryHandler
	GetDelivery      queries.GetDeliveryQueryHandler
	GetBalance       queries.GetBalanceQueryHandler
	GetBillingPeriod queries.GetBillingPeriodQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches all marketplace routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.POST("/requests/:id/publish", s.PublishRequest)
	api.POST("/requests/:id/cancel", s.CancelRequest)
	api.GET("/requests/:id/candidates", s.GetCandidates)
	api.POST("/requests/:id/bids", s.SubmitBid)

	api.POST("/bids/:id/accept", s.AcceptBid)
	api.POST("/bids/:id/reject", s.RejectBid)
	api.POST("/bids/:id/withdraw", s.WithdrawBid)

	api.POST("/availabilities", s.DeclareAvailability)

	api.GET("/deliveries/:id", s.GetDelivery)
	api.POST("/deliveries/:id/start", s.StartTransit)
	api.POST("/deliveries/:id/handover", s.HandoverAtRelay)
	api.POST("/deliveries/:id/acknowledge", s.AcknowledgePickup)
	api.POST("/deliveries/:id/code", s.GenerateValidationCode)
	api.POST("/deliveries/:id/validate", s.ValidateDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)

	api.GET("/parties/:id/balance", s.GetBalance)
	api.POST("/ledger/earnings", s.RecordEarning)
	api.POST("/ledger/commissions", s.RecordCommission)
	api.POST("/ledger/entries/:id/reverse", s.ReverseEntry)

	api.POST("/billing-periods", s.CloseBillingPeriod)
	api.GET("/billing-periods/:id", s.GetBillingPeriod)
	api.POST("/billing-periods/:id/invoice", s.IssueInvoice)
}

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body CreateRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	pickup, err := body.Pickup.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	drop, err := body.Drop.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	window, err := body.Window.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	pack, err := request.NewPackageSpec(
		body.Package.WeightGrams, body.Package.Fragile, body.Package.Refrigerated)
	if err != nil {
		return respondError(ctx, err)
	}
	price, err := body.Price.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(actor, requestID, pickup, drop, window, pack, price)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CreateRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: requestID.String()})
}

// PublishRequest handles POST /api/v1/requests/:id/publish.
func (s *Server) PublishRequest(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPublishRequestCommand(actor, requestID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.PublishRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /api/v1/requests/:id/cancel.
func (s *Server) CancelRequest(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var body ReasonBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelRequestCommand(actor, requestID, body.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CancelRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCandidates handles GET /api/v1/requests/:id/candidates.
func (s *Server) GetCandidates(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	limit := 10
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed <= 0 {
			return respondBadRequest(ctx, "Invalid limit parameter")
		}
		limit = parsed
	}

	query, err := queries.NewGetCandidatesQuery(requestID, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	candidates, err := s.handlers.GetCandidates.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Candidate, len(candidates))
	for i, candidate := range candidates {
		response[i] = Candidate{
			CourierID:      candidate.CourierID.String(),
			AvailabilityID: candidate.AvailabilityID.String(),
			Score:          candidate.Score,
			DetourKm:       candidate.DetourKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitBid handles POST /api/v1/requests/:id/bids.
func (s *Server) SubmitBid(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var body SubmitBidBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	price, err := body.Price.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	bidID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBidCommand(actor, bidID, requestID, price)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.SubmitBid.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: bidID.String()})
}

// AcceptBid handles POST /api/v1/bids/:id/accept. Accepting the winning bid
// creates the delivery; its identifier is returned.
func (s *Server) AcceptBid(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	bidID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewAcceptBidCommand(actor, bidID, deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AcceptBid.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: deliveryID.String()})
}

// RejectBid handles POST /api/v1/bids/:id/reject.
func (s *Server) RejectBid(ctx echo.Context) error {
	return s.bidAction(ctx, func(actor commands.Actor, bidID kernel.UUID) error {
		cmd, err := commands.NewRejectBidCommand(actor, bidID)
		if err != nil {
			return err
		}
		return s.handlers.RejectBid.Handle(ctx.Request().Context(), cmd)
	})
}

// WithdrawBid handles POST /api/v1/bids/:id/withdraw.
func (s *Server) WithdrawBid(ctx echo.Context) error {
	return s.bidAction(ctx, func(actor commands.Actor, bidID kernel.UUID) error {
		cmd, err := commands.NewWithdrawBidCommand(actor, bidID)
		if err != nil {
			return err
		}
		return s.handlers.WithdrawBid.Handle(ctx.Request().Context(), cmd)
	})
}

// DeclareAvailability handles POST /api/v1/availabilities.
func (s *Server) DeclareAvailability(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body DeclareAvailabilityBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	from, err := body.From.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	to, err := body.To.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	window, err := body.Window.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	availabilityID := kernel.NewUUID()
	cmd, err := commands.NewDeclareAvailabilityCommand(
		actor, availabilityID, from, to, window, body.CapacityGrams, body.Refrigerated)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.DeclareAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: availabilityID.String()})
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	projection, err := s.handlers.GetDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromProjection(projection))
}

// StartTransit handles POST /api/v1/deliveries/:id/start.
func (s *Server) StartTransit(ctx echo.Context) error {
	return s.deliveryAction(ctx, func(actor commands.Actor, deliveryID kernel.UUID) error {
		cmd, err := commands.NewStartTransitCommand(actor, deliveryID)
		if err != nil {
			return err
		}
		return s.handlers.StartTransit.Handle(ctx.Request().Context(), cmd)
	})
}

// HandoverAtRelay handles POST /api/v1/deliveries/:id/handover.
func (s *Server) HandoverAtRelay(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var body HandoverBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	nextCourierID, err := kernel.UUIDFromString(body.NextCourierID)
	if err != nil {
		return respondError(ctx, err)
	}
	relayPoint, err := body.RelayPoint.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewHandoverAtRelayCommand(actor, deliveryID, nextCourierID, relayPoint)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.HandoverAtRelay.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcknowledgePickup handles POST /api/v1/deliveries/:id/acknowledge.
func (s *Server) AcknowledgePickup(ctx echo.Context) error {
	return s.deliveryAction(ctx, func(actor commands.Actor, deliveryID kernel.UUID) error {
		cmd, err := commands.NewAcknowledgePickupCommand(actor, deliveryID)
		if err != nil {
			return err
		}
		return s.handlers.AcknowledgePickup.Handle(ctx.Request().Context(), cmd)
	})
}

// GenerateValidationCode handles POST /api/v1/deliveries/:id/code. The
// plaintext code is returned once; only its hash would survive a restart of
// the conversation with the recipient.
func (s *Server) GenerateValidationCode(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewGenerateValidationCodeCommand(actor, deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := s.handlers.GenerateValidationCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ValidationCodeResponse{Code: code})
}

// ValidateDelivery handles POST /api/v1/deliveries/:id/validate.
func (s *Server) ValidateDelivery(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var body ValidateDeliveryBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewValidateDeliveryCommand(actor, deliveryID, body.Code)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ValidateDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var body ReasonBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelDeliveryCommand(actor, deliveryID, body.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CancelDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetBalance handles GET /api/v1/parties/:id/balance.
func (s *Server) GetBalance(ctx echo.Context) error {
	partyID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetBalanceQuery(partyID)
	if err != nil {
		return respondError(ctx, err)
	}

	balance, err := s.handlers.GetBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Balance{
		PartyID:    balance.PartyID.String(),
		Amount:     Amount{Cents: balance.Balance.Cents(), Currency: balance.Balance.Currency()},
		EntryCount: balance.EntryCount,
	})
}

// RecordEarning handles POST /api/v1/ledger/earnings.
func (s *Server) RecordEarning(ctx echo.Context) error {
	return s.ledgerMovement(ctx, func(
		actor commands.Actor,
		entryID, deliveryID, partyID kernel.UUID,
		amount kernel.Money,
	) error {
		cmd, err := commands.NewRecordEarningCommand(actor, entryID, deliveryID, partyID, amount)
		if err != nil {
			return err
		}
		return s.handlers.RecordEarning.Handle(ctx.Request().Context(), cmd)
	})
}

// RecordCommission handles POST /api/v1/ledger/commissions.
func (s *Server) RecordCommission(ctx echo.Context) error {
	return s.ledgerMovement(ctx, func(
		actor commands.Actor,
		entryID, deliveryID, partyID kernel.UUID,
		amount kernel.Money,
	) error {
		cmd, err := commands.NewRecordCommissionCommand(actor, entryID, deliveryID, partyID, amount)
		if err != nil {
			return err
		}
		return s.handlers.RecordCommission.Handle(ctx.Request().Context(), cmd)
	})
}

// ReverseEntry handles POST /api/v1/ledger/entries/:id/reverse.
func (s *Server) ReverseEntry(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	entryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	adjustmentID := kernel.NewUUID()
	cmd, err := commands.NewReverseEntryCommand(actor, entryID, adjustmentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ReverseEntry.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: adjustmentID.String()})
}

// CloseBillingPeriod handles POST /api/v1/billing-periods.
func (s *Server) CloseBillingPeriod(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body CloseBillingPeriodBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	partyID, err := kernel.UUIDFromString(body.PartyID)
	if err != nil {
		return respondError(ctx, err)
	}

	periodID := kernel.NewUUID()
	cmd, err := commands.NewCloseBillingPeriodCommand(actor, periodID, partyID, body.Start, body.End)
	if err != nil {
		return respondError(ctx, err)
	}

	period, err := s.handlers.CloseBillingPeriod.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, BillingPeriodSummary{
		ID:      period.ID().String(),
		PartyID: period.PartyID().String(),
		Start:   period.Start(),
		End:     period.End(),
		Status:  period.Status().String(),
	})
}

// GetBillingPeriod handles GET /api/v1/billing-periods/:id.
func (s *Server) GetBillingPeriod(ctx echo.Context) error {
	periodID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetBillingPeriodQuery(periodID)
	if err != nil {
		return respondError(ctx, err)
	}

	projection, err := s.handlers.GetBillingPeriod.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, billingPeriodFromProjection(projection))
}

// IssueInvoice handles POST /api/v1/billing-periods/:id/invoice. The response
// body is the rendered PDF document.
func (s *Server) IssueInvoice(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	periodID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var body IssueInvoiceBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewIssueInvoiceCommand(actor, periodID, body.Sequence)
	if err != nil {
		return respondError(ctx, err)
	}

	document, err := s.handlers.IssueInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Blob(http.StatusCreated, "application/pdf", document)
}

func (s *Server) actor(ctx echo.Context) (commands.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return commands.Actor{}, errs.NewValueIsRequiredError(HeaderActorID)
	}

	role, err := roleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return commands.Actor{}, err
	}

	return commands.NewActor(id, role)
}

func (s *Server) bidAction(
	ctx echo.Context,
	action func(actor commands.Actor, bidID kernel.UUID) error,
) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	bidID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	if err := action(actor, bidID); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) deliveryAction(
	ctx echo.Context,
	action func(actor commands.Actor, deliveryID kernel.UUID) error,
) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	if err := action(actor, deliveryID); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ledgerMovement(
	ctx echo.Context,
	record func(actor commands.Actor, entryID, deliveryID, partyID kernel.UUID, amount kernel.Money) error,
) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body LedgerMovementBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	deliveryID, err := kernel.UUIDFromString(body.DeliveryID)
	if err != nil {
		return respondError(ctx, err)
	}
	partyID, err := kernel.UUIDFromString(body.PartyID)
	if err != nil {
		return respondError(ctx, err)
	}
	amount, err := body.Amount.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	entryID := kernel.NewUUID()
	if err := record(actor, entryID, deliveryID, partyID, amount); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: entryID.String()})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidError(name)
	}
	return id, nil
}

func roleFromString(raw string) (commands.Role, error) {
	switch raw {
	case "requester":
		return commands.RoleRequester, nil
	case "courier":
		return commands.RoleCourier, nil
	case "operator":
		return commands.RoleOperator, nil
	default:
		return commands.RoleUnknown, errs.NewValueIsInvalidError(HeaderActorRole)
	}
}

func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps domain errors to HTTP status codes.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrValidationLocked):
		status = http.StatusLocked
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrDuplicateBid),
		errors.Is(err, errs.ErrPeriodAlreadyOpen),
		errors.Is(err, errs.ErrHandoverRejected),
		errors.Is(err, errs.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
