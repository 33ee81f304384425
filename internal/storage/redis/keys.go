package redis

import (
	"fmt"

	"github.com/mcoot/gamewarden/internal/model"
)

// Key prefix for all moderation data
const keyPrefix = "warden"

// Key generation functions for each entity type

// punishmentKey returns the Redis key for a Punishment record
func punishmentKey(id model.PunishmentID) string {
	return fmt.Sprintf("%s:punishment:%d", keyPrefix, id)
}

// punishmentCounterKey returns the Redis key for the monotonic ID counter
func punishmentCounterKey() string {
	return fmt.Sprintf("%s:punishment:next_id", keyPrefix)
}

// playerHistoryKey returns the Redis key for the LIST of a player's
// punishment IDs, newest first
func playerHistoryKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player:%s", keyPrefix, playerID)
}

// activeByPlayerKey returns the Redis key for the SET of stored-active
// punishment IDs of one kind for a player
func activeByPlayerKey(kind model.Kind, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:active:%s:player:%s", keyPrefix, kind, playerID)
}

// activeByIPKey returns the Redis key for the SET of stored-active
// punishment IDs of one kind for an IP address
func activeByIPKey(kind model.Kind, ip string) string {
	return fmt.Sprintf("%s:idx:active:%s:ip:%s", keyPrefix, kind, ip)
}

// kindIndexKey returns the Redis key for the SET of all punishment IDs of
// one kind, used for stats
func kindIndexKey(kind model.Kind) string {
	return fmt.Sprintf("%s:idx:kind:%s", keyPrefix, kind)
}

// pointsKey returns the Redis key for a player's point balance
func pointsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:points:%s", keyPrefix, playerID)
}
