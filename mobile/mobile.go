//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	cp -r configs mobile/configs
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.engine2d -o build/android/engine2d.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Engine2D.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/engine2d/pkg/app"
	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/embedded"
	"github.com/decker502/engine2d/pkg/logger"
)

func init() {
	embedded.Init(configsFS)

	cfg, err := config.LoadEmbedded()
	if err != nil {
		log.Fatalf("failed to load scene configuration: %v", err)
	}

	// 移动端设置仅保存在内存中
	gameApp, err := app.NewApp(app.Config{
		Engine: cfg,
		Logger: logger.Must(logger.Config{Level: cfg.Engine.LogLevel, Development: true}),
	})
	if err != nil {
		log.Fatalf("failed to start engine: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
