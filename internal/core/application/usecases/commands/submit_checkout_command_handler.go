package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/checkout"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/services"
	"bloom/internal/core/ports"
)

// CartEvaluator decides whether a cart may be submitted. services.ValidationEngine satisfies it.
type CartEvaluator interface {
	Evaluate(c cart.Cart) services.Verdict
}

// CheckoutObserver is called synchronously after every state transition.
type CheckoutObserver func(status checkout.Status)

// CheckoutEndpoints are the collaborators a submission talks to. Navigator is optional; the
// others are required and their absence is a configuration error.
type CheckoutEndpoints struct {
	Presigner           ports.UploadPresigner
	Uploader            ports.ObjectUploader
	Orders              ports.OrderGateway
	Navigator           ports.Navigator
	ConfirmationBaseURL string
}

// SubmitCheckoutResult describes a successful submission.
type SubmitCheckoutResult struct {
	// OrderID is the id returned by the order endpoint, or the client id when it returned none.
	OrderID       string
	ClientOrderID kernel.UUID
	CheckoutURL   string
	Destination   string
	Images        int
}

// SubmitCheckoutCommandHandler runs the checkout state machine for one cart at a time.
//
// Flow:
//  1. the cart is evaluated; blocking messages reject the submission before any transition
//  2. Preparing: a client order id is minted and the cart is snapshotted into an OrderDraft
//  3. UploadingImages(i/N): each image is presigned and PUT, strictly one after another
//  4. CreatingOrder: the draft is posted once every upload succeeded
//  5. Redirecting: the buyer is sent to the confirmation page, then Success
//
// Any presign, upload or order failure ends in Failed with one generic message; the live cart
// is never touched. A finished handler starts over from Idle on the next Handle call.
//
// Example:
//
//	handler := NewSubmitCheckoutCommandHandler(engine, endpoints, logger)
//	handler.Subscribe(func(s checkout.Status) { fmt.Println(s) })
//	cmd, _ := NewSubmitCheckoutCommand(store)
//	result, err := handler.Handle(ctx, cmd)
type SubmitCheckoutCommandHandler struct {
	evaluator CartEvaluator
	endpoints CheckoutEndpoints
	logger    *slog.Logger

	mu        sync.Mutex
	status    checkout.Status
	observers []CheckoutObserver
}

// NewSubmitCheckoutCommandHandler creates an idle handler.
func NewSubmitCheckoutCommandHandler(
	evaluator CartEvaluator,
	endpoints CheckoutEndpoints,
	logger *slog.Logger,
) *SubmitCheckoutCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmitCheckoutCommandHandler{
		evaluator: evaluator,
		endpoints: endpoints,
		logger:    logger.With("component", "checkout"),
		status:    checkout.Status{State: checkout.Idle},
	}
}

// Subscribe registers an observer for state transitions.
func (h *SubmitCheckoutCommandHandler) Subscribe(o CheckoutObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, o)
}

// Status returns the current state and upload progress.
func (h *SubmitCheckoutCommandHandler) Status() checkout.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Handle submits the cart held by cmd's source.
//
// Errors:
//   - *checkout.ConfigurationError when a required endpoint is missing, before any transition
//   - *checkout.BlockedError when the cart has blocking messages, before any transition
//   - checkout.ErrCheckoutInProgress when another submission is running
//   - *checkout.SubmissionError after a transition to Failed
func (h *SubmitCheckoutCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitCheckoutCommand,
) (SubmitCheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitCheckoutResult{}, err
	}
	if err := h.checkConfiguration(); err != nil {
		return SubmitCheckoutResult{}, err
	}
	if h.Status().State.IsActive() {
		return SubmitCheckoutResult{}, checkout.ErrCheckoutInProgress
	}

	snapshot := cmd.Source().State()
	if verdict := h.evaluator.Evaluate(snapshot); !verdict.CanCheckout() {
		return SubmitCheckoutResult{}, checkout.NewBlockedError(verdict.BlockingMessages)
	}

	clientID := kernel.NewUUID()
	if err := h.begin(clientID); err != nil {
		return SubmitCheckoutResult{}, err
	}
	draft := checkout.BuildDraft(clientID, snapshot)

	uploads := draft.Uploads()
	for i, u := range uploads {
		if err := h.transition(checkout.State.UploadImages, func(s *checkout.Status) {
			s.Uploaded, s.Total = i+1, len(uploads)
		}); err != nil {
			return SubmitCheckoutResult{}, h.fail(ctx, err)
		}
		if err := h.upload(ctx, u); err != nil {
			return SubmitCheckoutResult{}, h.fail(ctx, fmt.Errorf("upload %d/%d %s: %w", i+1, len(uploads), u.Key, err))
		}
	}

	if err := h.transition(checkout.State.CreateOrder, nil); err != nil {
		return SubmitCheckoutResult{}, h.fail(ctx, err)
	}
	created, err := h.endpoints.Orders.CreateOrder(ctx, draft)
	if err != nil {
		return SubmitCheckoutResult{}, h.fail(ctx, fmt.Errorf("create order: %w", err))
	}

	orderID := created.OrderID
	if orderID == "" {
		orderID = clientID.String()
	}
	destination := h.destination(orderID)
	if err = h.transition(checkout.State.Redirect, func(s *checkout.Status) { s.OrderID = orderID }); err != nil {
		return SubmitCheckoutResult{}, h.fail(ctx, err)
	}
	if h.endpoints.Navigator != nil {
		if navErr := h.endpoints.Navigator.Navigate(ctx, destination); navErr != nil {
			h.logger.WarnContext(ctx, "navigation to confirmation failed",
				"orderId", orderID, "destination", destination, "error", navErr)
		}
	}
	if err = h.transition(checkout.State.Succeed, nil); err != nil {
		return SubmitCheckoutResult{}, err
	}

	return SubmitCheckoutResult{
		OrderID:       orderID,
		ClientOrderID: clientID,
		CheckoutURL:   created.CheckoutURL,
		Destination:   destination,
		Images:        len(uploads),
	}, nil
}

func (h *SubmitCheckoutCommandHandler) checkConfiguration() error {
	var missing []string
	if h.endpoints.Presigner == nil || h.endpoints.Uploader == nil {
		missing = append(missing, "presign endpoint")
	}
	if h.endpoints.Orders == nil {
		missing = append(missing, "order endpoint")
	}
	if h.evaluator == nil {
		missing = append(missing, "cart evaluator")
	}
	if len(missing) > 0 {
		return checkout.NewConfigurationError(missing...)
	}
	return nil
}

// begin resets a finished handler and enters Preparing in one step.
func (h *SubmitCheckoutCommandHandler) begin(clientID kernel.UUID) error {
	h.mu.Lock()
	if h.status.State.IsActive() {
		h.mu.Unlock()
		return checkout.ErrCheckoutInProgress
	}
	h.status = checkout.Status{State: checkout.Idle}
	h.mu.Unlock()

	return h.transition(checkout.State.Prepare, func(s *checkout.Status) {
		s.OrderID = clientID.String()
	})
}

func (h *SubmitCheckoutCommandHandler) transition(
	step func(checkout.State) (checkout.State, error),
	update func(*checkout.Status),
) error {
	h.mu.Lock()
	next, err := step(h.status.State)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	h.status.State = next
	if update != nil {
		update(&h.status)
	}
	status := h.status
	observers := slices.Clone(h.observers)
	h.mu.Unlock()

	h.logger.Info("checkout state changed", "state", status.String(), "orderId", status.OrderID)
	for _, o := range observers {
		o(status)
	}
	return nil
}

func (h *SubmitCheckoutCommandHandler) fail(ctx context.Context, cause error) error {
	step := h.Status().State
	h.logger.ErrorContext(ctx, "checkout failed", "step", step.String(), "error", cause)
	if err := h.transition(checkout.State.Fail, func(s *checkout.Status) {
		s.Message = checkout.UserFailureMessage
	}); err != nil {
		return errors.Join(checkout.NewSubmissionError(step, cause), err)
	}
	return checkout.NewSubmissionError(step, cause)
}

func (h *SubmitCheckoutCommandHandler) upload(ctx context.Context, u checkout.ImageUpload) error {
	presigned, err := h.endpoints.Presigner.Presign(ctx, u.Key, u.ContentType)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}
	if u.Payload == nil {
		return fmt.Errorf("image %s has no payload", u.Name)
	}
	body, err := u.Payload.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", u.Name, err)
	}
	defer body.Close()

	if err = h.endpoints.Uploader.Put(ctx, presigned.URL, u.ContentType, body, u.Size); err != nil {
		return fmt.Errorf("put: %w", err)
	}
	return nil
}

func (h *SubmitCheckoutCommandHandler) destination(orderID string) string {
	return strings.TrimRight(h.endpoints.ConfirmationBaseURL, "/") + "/order/" + url.PathEscape(orderID)
}
