package logging

import "go.uber.org/zap"

const production = "production"

func New(env string) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
