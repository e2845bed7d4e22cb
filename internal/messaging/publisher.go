package messaging

import (
	"fmt"

	"github.com/hollowvale/mud/internal/storage"
)

// MudPublisher addresses the game's messaging channels over a NatsServer:
// one subject per player and one per room. The command layer publishes
// through this; player sessions subscribe to their own subjects.
type MudPublisher struct {
	server *NatsServer
}

// NewMudPublisher wraps a NatsServer for game message delivery.
func NewMudPublisher(server *NatsServer) *MudPublisher {
	return &MudPublisher{server: server}
}

// PlayerSubject returns the per-player subject name.
func PlayerSubject(charId storage.Identifier) string {
	return fmt.Sprintf("player-%s", charId)
}

// RoomSubject returns the per-room subject name.
func RoomSubject(zoneId, roomId storage.Identifier) string {
	return fmt.Sprintf("zone-%s-room-%s", zoneId, roomId)
}

// Publish sends a message to an arbitrary subject.
func (p *MudPublisher) Publish(subject string, data []byte) error {
	return p.server.Publish(subject, data)
}

// PublishToPlayer sends a message to a single player's subject.
func (p *MudPublisher) PublishToPlayer(charId storage.Identifier, data []byte) error {
	return p.server.Publish(PlayerSubject(charId), data)
}

// PublishToRoom sends a message to everyone subscribed to a room's subject.
func (p *MudPublisher) PublishToRoom(zoneId, roomId storage.Identifier, data []byte) error {
	return p.server.Publish(RoomSubject(zoneId, roomId), data)
}
