package game

import "github.com/hollowvale/mud/internal/storage"

// Publisher provides methods for publishing messages to game channels.
type Publisher interface {
	PublishToPlayer(charId storage.Identifier, data []byte) error
	PublishToRoom(zoneId, roomId storage.Identifier, data []byte) error
}