// Package config предоставляет функциональность для загрузки конфигурации из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgConfigFileMissing       = "configuration file not found, using environment only"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T. Если path указывает на существующий файл
// (.env, .yaml, .toml), значения берутся из него и перекрываются окружением.
// Пустой или отсутствующий path означает чтение только из окружения.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	readFile := path != ""
	if readFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Warn(ctx, msgConfigFileMissing, zap.String(attrPath, path))
			readFile = false
		}
	}

	var err error
	if readFile {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)

	return &cfg, nil
}
