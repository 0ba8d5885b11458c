package notify

import (
	"fmt"
	"log"

	"nextjs_to_go/config"
	"nextjs_to_go/utils"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v5/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
)

// CreateClient 创建短信客户端，凭证从应用配置读取
func CreateClient(cfg config.Config) (*dysmsapi20170525.Client, error) {
	if cfg.SMSConfig.AccessKeyID == "" || cfg.SMSConfig.AccessKeySecret == "" {
		return nil, fmt.Errorf("短信服务凭证未配置")
	}

	clientConfig := &openapi.Config{
		AccessKeyId:     tea.String(cfg.SMSConfig.AccessKeyID),
		AccessKeySecret: tea.String(cfg.SMSConfig.AccessKeySecret),
	}
	// Endpoint 请参考 https://api.aliyun.com/product/Dysmsapi
	clientConfig.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	return dysmsapi20170525.NewClient(clientConfig)
}

// sendTemplateSms 按模板发送短信
func sendTemplateSms(cfg config.Config, phoneNumber, templateCode string, templateParam map[string]string) error {
	client, err := CreateClient(cfg)
	if err != nil {
		return fmt.Errorf("创建短信客户端失败: %v", err)
	}

	paramJSON, err := utils.StringMapToJSONString(templateParam)
	if err != nil {
		return err
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		PhoneNumbers:  tea.String(phoneNumber),
		SignName:      tea.String(cfg.SMSConfig.SignName),
		TemplateCode:  tea.String(templateCode),
		TemplateParam: tea.String(paramJSON),
	}
	runtime := &util.RuntimeOptions{}

	resp, err := client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		if sdkErr, ok := err.(*tea.SDKError); ok {
			return fmt.Errorf("短信发送失败: %s", tea.StringValue(sdkErr.Message))
		}
		return fmt.Errorf("短信发送失败: %v", err)
	}

	if resp.Body != nil && tea.StringValue(resp.Body.Code) != "OK" {
		return fmt.Errorf("短信发送失败: %s", tea.StringValue(resp.Body.Message))
	}

	log.Printf("短信发送成功: %s", phoneNumber)
	return nil
}

// SendVerificationCode 发送登录验证码
func SendVerificationCode(cfg config.Config, phoneNumber, code string) error {
	return sendTemplateSms(cfg, phoneNumber, cfg.SMSConfig.TemplateCode, map[string]string{"code": code})
}

// SendReturnAlert 退换货申请创建后向卖家发送提醒
// 发送失败只记录日志，不影响申请流程
func SendReturnAlert(cfg config.Config, phoneNumber string, returnID uint) {
	if !utils.IsValidPhone(phoneNumber) {
		log.Printf("卖家手机号无效，跳过退换货提醒: %s", phoneNumber)
		return
	}
	if err := sendTemplateSms(cfg, phoneNumber, cfg.SMSConfig.TemplateCode, map[string]string{
		"code": fmt.Sprintf("%d", returnID),
	}); err != nil {
		log.Printf("退换货提醒短信发送失败: %v", err)
	}
}
