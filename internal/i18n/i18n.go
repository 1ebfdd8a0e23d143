// Package i18n 提供错误提示的国际化支持
// 基于 universal-translator 为每种语言注册一份消息表
package i18n

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/weiwangfds/easterblog/internal/logger"
)

// 支持的语言
const (
	LangZhCN = "zh-CN"
	LangEnUS = "en-US"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangEnUS: {
			"internal_server_error": "Internal server error",
			"invalid_params":        "Invalid parameters",
			"unauthorized":          "Unauthorized",
			"not_found":             "Resource not found",
			"api_not_found":         "API endpoint not found",
			"file_required":         "No file uploaded",
			"file_empty":            "Uploaded file is empty",
			"file_too_large":        "File too large",
			"file_type_not_allowed": "Invalid file type",
			"storage_write_failed":  "Failed to store uploaded file",
			"database_error":        "Database error",
			"unknown_error":         "Unknown error",
		},
		LangZhCN: {
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"unauthorized":          "未授权",
			"not_found":             "资源未找到",
			"api_not_found":         "接口不存在",
			"file_required":         "未上传文件",
			"file_empty":            "上传文件为空",
			"file_too_large":        "文件大小超限",
			"file_type_not_allowed": "文件类型不允许",
			"storage_write_failed":  "文件存储失败",
			"database_error":        "数据库错误",
			"unknown_error":         "未知错误",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangEnUS,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器并注册消息表
func (i *I18n) initTranslators() {
	enUS := en_US.New()
	zhCN := zh.New()
	uni := ut.New(enUS, enUS, zhCN)

	langMappings := map[string]string{
		LangEnUS: "en_US",
		LangZhCN: "zh",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("初始化翻译器失败: %s (locale: %s)", ourLang, localeLang)
			continue
		}
		for key, text := range translations[ourLang] {
			if err := trans.Add(key, text, true); err != nil {
				logger.Errorf("注册翻译失败: %s/%s: %v", ourLang, key, err)
			}
		}
		i.translators[ourLang] = trans
	}
}

// Translate 根据键和语言获取翻译
// 不支持的语言回退到默认语言，缺失的键原样返回
func (i *I18n) Translate(key, lang string) string {
	trans, ok := i.translators[lang]
	if !ok {
		trans, ok = i.translators[i.defaultLang]
		if !ok {
			return key
		}
	}

	text, err := trans.T(key)
	if err == nil {
		return text
	}

	if lang != i.defaultLang {
		if def, ok := i.translators[i.defaultLang]; ok {
			if text, err := def.T(key); err == nil {
				return text
			}
		}
	}

	logger.Warnf("未找到翻译: %s, 语言: %s", key, lang)
	return key
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}

// MatchLanguage 从 Accept-Language 请求头中选出第一个支持的语言
func (i *I18n) MatchLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		switch {
		case strings.HasPrefix(tag, "zh"):
			return LangZhCN
		case strings.HasPrefix(tag, "en"):
			return LangEnUS
		}
	}
	return i.defaultLang
}
