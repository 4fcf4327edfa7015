package main

import (
	"corehr/onboarding-api/app"
	"corehr/onboarding-api/config"
	"fmt"

	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", v.GetInt("host.port")))

	err = a.Run(fmt.Sprintf(":%d", v.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
