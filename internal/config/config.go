package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"candyshop.db"`

	Auth  Auth  `envPrefix:"AUTH_"`
	Staff Staff `envPrefix:"STAFF_"`
}

type Auth struct {
	JWTSecret       string `env:"JWT_SECRET,required"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES" envDefault:"60"`
}

// Staff describes the management account seeded on startup.
type Staff struct {
	Name     string `env:"NAME" envDefault:"Shop Staff"`
	Email    string `env:"EMAIL" envDefault:"staff@candyshop.example"`
	Password string `env:"PASSWORD,required"`
	Position string `env:"POSITION" envDefault:"Manager"`
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
