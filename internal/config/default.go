package config

import (
	"github.com/echovault/zsetdb/internal/constants"
)

func DefaultConfig() Config {
	return Config{
		ServerID:   "",
		Protocol:   constants.DefaultProtocol,
		MaxMemory:  0,
		RandomSeed: 0,
		ScanCount:  constants.DefaultScanCount,
	}
}
