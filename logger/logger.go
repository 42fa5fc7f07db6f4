package logger

import (
	"log"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

func Init(env string) {
	var base *zap.Logger
	var err error
	if env == "production" {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	Log = base.Sugar()
}

func init() {
	// Replaced by Init once main has loaded the environment. Keeps package
	// level handlers usable from tests without explicit setup.
	Log = zap.NewNop().Sugar()
}
