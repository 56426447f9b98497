//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要先把 configs 目录复制到此目录：
//
//	cp -r configs mobile/configs
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed configs
var configsFS embed.FS
