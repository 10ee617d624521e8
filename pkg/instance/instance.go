package instance

import "github.com/angelmondragon/storefront-backend/pkg/env"

// GetID identifies the running process in logs. Heroku-style DYNO names win
// over INSTANCE_ID; local runs report "local".
func GetID() string {
	return env.First("local", "DYNO", "INSTANCE_ID")
}
