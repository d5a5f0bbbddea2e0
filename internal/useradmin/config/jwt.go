package config

// JWTConfig содержит параметры проверки access токенов администратора.
// Токены выпускает сервис аутентификации, здесь они только проверяются.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"USERADMIN_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	Issuer    string `yaml:"issuer" env:"USERADMIN_JWT_ISSUER" env-default:""`
}

// BcryptConfig содержит стоимость хеширования паролей.
type BcryptConfig struct {
	Cost int `yaml:"cost" env:"USERADMIN_BCRYPT_COST" env-default:"10"`
}
