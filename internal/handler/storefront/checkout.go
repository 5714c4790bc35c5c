package storefront

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/handler"
	"github.com/zyraa/storefront/internal/service"
	"github.com/zyraa/storefront/internal/telemetry"
)

// CheckoutHandler handles order placement.
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *slog.Logger
	metrics         *telemetry.BusinessMetrics
	validate        *validator.Validate
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
		metrics:         metrics,
		validate:        validator.New(),
	}
}

// checkoutRequest is the body for POST /checkout. The field set mirrors
// the storefront's checkout form.
type checkoutRequest struct {
	FullName      string `json:"fullName" validate:"required,min=2,max=120"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=7,max=20"`
	Address       string `json:"address" validate:"required,min=5,max=250"`
	City          string `json:"city" validate:"omitempty,max=80"`
	ZipCode       string `json:"zipCode" validate:"omitempty,max=12"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=cod card upi"`
}

// fieldMessages turns validator errors into per-field messages keyed by
// the JSON field name.
func fieldMessages(errs validator.ValidationErrors) map[string]string {
	jsonNames := map[string]string{
		"FullName":      "fullName",
		"Email":         "email",
		"Phone":         "phone",
		"Address":       "address",
		"City":          "city",
		"ZipCode":       "zipCode",
		"PaymentMethod": "paymentMethod",
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name, ok := jsonNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}

		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required"
		case "email":
			fields[name] = "Must be a valid email address"
		case "min":
			fields[name] = "Too short"
		case "max":
			fields[name] = "Too long"
		case "oneof":
			fields[name] = "Unsupported value"
		default:
			fields[name] = "Invalid value"
		}
	}
	return fields
}

// Place handles POST /checkout
func (h *CheckoutHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.Error(w, h.logger, domain.WrapError(err, domain.EINVALID, "checkout.place", "Invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			handler.Error(w, h.logger, domain.Internal(err, "checkout.place", "failed to validate request"))
			return
		}
		h.metrics.RecordCheckoutRejected("invalid_input")
		handler.ValidationError(w, fieldMessages(verrs))
		return
	}

	meta := domain.OrderMetadata{
		Customer: map[string]string{
			"fullName": req.FullName,
			"email":    req.Email,
			"phone":    req.Phone,
		},
		Delivery: map[string]string{
			"address": req.Address,
			"city":    req.City,
			"zipCode": req.ZipCode,
		},
		PaymentMethod: req.PaymentMethod,
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), meta)
	if err != nil {
		handler.Error(w, h.logger, err)
		return
	}

	handler.JSON(w, http.StatusCreated, order)
}
