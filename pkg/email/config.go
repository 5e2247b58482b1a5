package email

// Config holds email service configuration. The Postmark tokens are
// optional so development environments can run with the dev sender;
// sender and support addresses are always required because they
// establish the identity and reply-to of every outbound email.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}
