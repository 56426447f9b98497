// Package embedded 提供嵌入配置的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的配置。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultConfigPath 内置默认配置文件路径
const DefaultConfigPath = "configs/engine2d.yaml"

const configsPrefix = "configs/"

// ErrNotInitialized 在 Init 之前调用任何访问函数时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var configsFS fs.FS

// Init 注册包含 configs/ 目录的文件系统
// 必须在 main() 开始时、任何配置加载之前调用
// 测试中可以传入 os.DirFS 或 fstest.MapFS 代替 embed.FS
func Init(configs fs.FS) {
	configsFS = configs
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return configsFS != nil
}

// normalize 将路径转换为 embed.FS 使用的斜杠形式，并检查前缀
func normalize(path string) (string, error) {
	if configsFS == nil {
		return "", ErrNotInitialized
	}
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, configsPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with %q)", path, configsPrefix)
	}
	return path, nil
}

// ReadFile 读取嵌入文件
// 路径必须以 "configs/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(configsFS, path)
}

// Exists 检查嵌入文件是否存在
func Exists(path string) bool {
	path, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(configsFS, path)
	return err == nil
}

// Glob 在嵌入的配置目录中匹配文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(configsFS, pattern)
}
