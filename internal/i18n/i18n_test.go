package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	in := GetInstance()

	assert.Equal(t, "API endpoint not found", in.Translate("api_not_found", LangEnUS))
	assert.Equal(t, "接口不存在", in.Translate("api_not_found", LangZhCN))
	// 不支持的语言回退到默认语言
	assert.Equal(t, "Unauthorized", in.Translate("unauthorized", "fr-FR"))
	// 缺失的键原样返回
	assert.Equal(t, "no_such_key", in.Translate("no_such_key", LangEnUS))
}

func TestMatchLanguage(t *testing.T) {
	in := GetInstance()

	cases := map[string]string{
		"":                        LangEnUS,
		"zh-CN,zh;q=0.9,en;q=0.8": LangZhCN,
		"en-GB,en;q=0.9":          LangEnUS,
		"fr-FR, zh-TW;q=0.5":      LangZhCN,
		"de-DE":                   LangEnUS,
	}
	for header, want := range cases {
		assert.Equal(t, want, in.MatchLanguage(header), header)
	}
}
