package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-student-registry/internal/config"
	"github.com/MKhiriev/go-student-registry/internal/logger"
)

// staticAppInfo reports the version fixed at startup.
type staticAppInfo struct {
	version string
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when cfg.Version is
// blank.
func NewAppInfoService(cfg config.App, log *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	log.Debug().Str("func", "NewAppInfoService").Str("version", version).Msg("app version configured")
	return staticAppInfo{version: version}, nil
}

func (s staticAppInfo) GetAppVersion(context.Context) string {
	return s.version
}
