package msg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translation "github.com/go-playground/validator/v10/translations/en"
	zh_translation "github.com/go-playground/validator/v10/translations/zh"
)

var (
	trans     ut.Translator
	transOnce sync.Once
	transErr  error
)

// initTranslator 将翻译器绑定到gin的验证器上，对binding的tag进行翻译
func initTranslator(language string) error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("无法获取gin验证器实例")
	}

	zhT := zh.New()
	enT := en.New()

	// 第一个参数是备用语言，后面的是应当支持的语言
	uni := ut.New(enT, enT, zhT)

	trans, ok = uni.GetTranslator(language)
	if !ok {
		return fmt.Errorf("not found translator %s", language)
	}

	switch language {
	case "zh":
		return zh_translation.RegisterDefaultTranslations(validate, trans)
	default:
		return en_translation.RegisterDefaultTranslations(validate, trans)
	}
}

// remove 去掉字段路径里的结构体前缀，只保留字段名
func remove(errors map[string]string) map[string]string {
	result := map[string]string{}
	for key, value := range errors {
		result[key[strings.Index(key, ".")+1:]] = value
	}
	return result
}

// TranslateBindError 将参数绑定错误翻译成中文提示
// 非校验类错误（如JSON语法错误）原样返回
func TranslateBindError(err error) string {
	transOnce.Do(func() {
		transErr = initTranslator("zh")
	})
	if transErr != nil {
		return err.Error()
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrs))
	for _, message := range remove(validationErrs.Translate(trans)) {
		parts = append(parts, message)
	}
	return strings.Join(parts, "; ")
}
