package redis

import (
	"fmt"

	"github.com/mcoot/puppybowl/internal/model"
)

// Key prefix for all roster view data
const keyPrefix = "puppybowl"

// revealedKey returns the Redis key for the SET of player ids a viewer has expanded
func revealedKey(viewer model.ViewerID) string {
	return fmt.Sprintf("%s:viewer:%s:revealed", keyPrefix, viewer)
}

// revealedPattern matches every viewer's revealed SET
func revealedPattern() string {
	return fmt.Sprintf("%s:viewer:*:revealed", keyPrefix)
}
