package config

import "os"

func IsDebug() bool {
	return os.Getenv("MOTIVATE_DEBUG") == "1"
}
