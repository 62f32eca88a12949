package usecase

import (
	"context"

	"github.com/forest33/bitguard/business/entity"
)

type configHandler interface {
	GetPath() string
	AddObserver(func(interface{})) error
}

// Dialer opens the connection carrying one exchange
type Dialer func(ctx context.Context) (entity.Connection, error)
