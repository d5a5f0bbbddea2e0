package services

import (
	svc "useradmin/internal/useradmin/ports/services"
)

// ServiceFactory создает хешер паролей и верификатор токенов.
type ServiceFactory struct {
	passwordHasher svc.PasswordHasher
	tokenVerifier  svc.TokenVerifier
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(jwtSecretKey, jwtIssuer string, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordHasher: NewBcrypt(bcryptCost),
		tokenVerifier:  NewJWT(jwtSecretKey, jwtIssuer),
	}
}

// PasswordHasher возвращает хешер паролей.
func (f *ServiceFactory) PasswordHasher() svc.PasswordHasher {
	return f.passwordHasher
}

// TokenVerifier возвращает верификатор токенов.
func (f *ServiceFactory) TokenVerifier() svc.TokenVerifier {
	return f.tokenVerifier
}
