package paystack

// Config holds Paystack API credentials. The secret key doubles as the
// webhook signing key.
type Config struct {
	SecretKey string `env:"PAYSTACK_SECRET_KEY,required"`
	BaseURL   string `env:"PAYSTACK_BASE_URL" envDefault:"https://api.paystack.co"`
}
