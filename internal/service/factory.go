package service

import (
	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/store"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	mailQueue MailQueue
	composer  *mail.Composer
}

func NewServices(stores *store.Stores, txRunner TxRunner, mailQueue MailQueue, composer *mail.Composer) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		mailQueue: mailQueue,
		composer:  composer,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions())
}

func (s *Services) Accounts() AccountService {
	return NewAccountService(
		s.txRunner,
		s.stores.Users(),
		s.stores.UserProfiles(),
		s.Auth(),
		s.mailQueue,
		s.composer,
	)
}

func (s *Services) Alerts() AlertService {
	return NewAlertService(s.stores.Alerts())
}

func (s *Services) Favorites() FavoriteService {
	return NewFavoriteService(s.stores.Favorites())
}
