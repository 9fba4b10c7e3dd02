package redis

import "fmt"

// Key prefix for all player data
const keyPrefix = "bship"

// playerKey returns the Redis key for a player hash
func playerKey(username string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, username)
}

// playerIndexKey returns the Redis key for the SET of all usernames
func playerIndexKey() string {
	return fmt.Sprintf("%s:players", keyPrefix)
}
