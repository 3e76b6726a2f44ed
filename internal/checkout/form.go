package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	PaymentCard   = "card"
	PaymentPaypal = "paypal"
	PaymentBkash  = "bkash"
	PaymentRocket = "rocket"
)

// BillingForm carries the billing and payment input for one checkout
// attempt. Card fields are only required when the payment method is card.
type BillingForm struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Address       string `json:"address" validate:"required,max=500"`
	City          string `json:"city" validate:"required,max=100"`
	Zip           string `json:"zip" validate:"required,max=20"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card paypal bkash rocket"`
	CardNumber    string `json:"cardNumber,omitempty" validate:"required_if=PaymentMethod card,omitempty,cardnumber"`
	Expiry        string `json:"expiry,omitempty" validate:"required_if=PaymentMethod card,omitempty,cardexpiry"`
	CVV           string `json:"cvv,omitempty" validate:"required_if=PaymentMethod card,omitempty,cardcvv"`
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVRe    = regexp.MustCompile(`^\d{3,4}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("cardcvv", func(fl validator.FieldLevel) bool {
		return cardCVVRe.MatchString(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// normalize trims surrounding whitespace from every field before the schema
// runs, so " " never passes a required check.
func (f *BillingForm) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.Zip = strings.TrimSpace(f.Zip)
	f.PaymentMethod = strings.TrimSpace(strings.ToLower(f.PaymentMethod))
	f.CardNumber = strings.TrimSpace(f.CardNumber)
	f.Expiry = strings.TrimSpace(f.Expiry)
	f.CVV = strings.TrimSpace(f.CVV)
}

var fieldMessages = map[string]map[string]string{
	"FirstName": {
		"required": "First name is required",
		"max":      "First name too long",
	},
	"LastName": {
		"required": "Last name is required",
		"max":      "Last name too long",
	},
	"Email": {
		"required": "Email is required",
		"email":    "Invalid email address",
		"max":      "Email too long",
	},
	"Address": {
		"required": "Address is required",
		"max":      "Address too long",
	},
	"City": {
		"required": "City is required",
		"max":      "City too long",
	},
	"Zip": {
		"required": "ZIP code is required",
		"max":      "ZIP code too long",
	},
	"PaymentMethod": {
		"required": "Payment method is required",
		"oneof":    "Unsupported payment method",
	},
	"CardNumber": {
		"required_if": "Card number must be 16 digits",
		"cardnumber":  "Card number must be 16 digits",
	},
	"Expiry": {
		"required_if": "Expiry must be MM/YY format",
		"cardexpiry":  "Expiry must be MM/YY format",
	},
	"CVV": {
		"required_if": "CVV must be 3-4 digits",
		"cardcvv":     "CVV must be 3-4 digits",
	},
}

// validationError maps the first failed constraint to a field-level message.
func validationError(err error) *ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "", Message: "Invalid input"}
	}
	fe := fieldErrs[0]
	field := fe.StructField()
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return &ValidationError{Field: jsonField(field), Message: msg}
		}
	}
	return &ValidationError{Field: jsonField(field), Message: "Invalid " + jsonField(field)}
}

func jsonField(structField string) string {
	if structField == "" {
		return ""
	}
	if structField == "CVV" {
		return "cvv"
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}
