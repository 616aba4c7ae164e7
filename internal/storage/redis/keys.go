package redis

import (
	"fmt"

	"github.com/mcoot/shellgame-go/internal/model"
)

// Key prefix for all shell game data
const keyPrefix = "shellgame"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}
