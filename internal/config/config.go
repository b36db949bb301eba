package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Payment  Payment  `envPrefix:"PAYMENT_"`
	Carrier  Carrier  `envPrefix:"CARRIER_"`
	Renderer Renderer `envPrefix:"RENDERER_"`
	Mail     Mail     `envPrefix:"MAIL_"`
	Company  Company  `envPrefix:"COMPANY_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

// Payment holds the gateway callback verification secret.
type Payment struct {
	GatewaySecret string `env:"GATEWAY_SECRET"`
}

// Carrier configures the logistics provider API; ClientKey and SecretKey
// are the two static auth headers the carrier expects.
type Carrier struct {
	BaseURL    string `env:"BASE_URL"`
	ClientKey  string `env:"CLIENT_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	PickupName string `env:"PICKUP_NAME" envDefault:"warehouse"`
}

type Renderer struct {
	BaseURL string `env:"BASE_URL"`
}

type Mail struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Company details printed on invoices and carrier labels.
type Company struct {
	Name    string `env:"NAME"`
	Address string `env:"ADDRESS"`
	Phone   string `env:"PHONE"`
	Email   string `env:"EMAIL"`
	GSTIN   string `env:"GSTIN"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
