package app

import "github.com/nbagirov/tapreflex/internal/infrastructure/lock"

func (a *application) InitPlayerLockManager() *lock.PlayerLockManager {
	return lock.NewPlayerLockManager()
}
