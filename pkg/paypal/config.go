package paypal

// Config holds PayPal REST credentials. Environment selects the
// sandbox or live API host.
type Config struct {
	ClientID     string `env:"PAYPAL_CLIENT_ID,required"`
	ClientSecret string `env:"PAYPAL_CLIENT_SECRET,required"`
	Environment  string `env:"PAYPAL_ENVIRONMENT" envDefault:"sandbox"`
}

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"
)
