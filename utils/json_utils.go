package utils

import (
	"encoding/json"
	"fmt"
)

// StringMapToJSONString 将map[string]string转换为JSON字符串
// 参数:
// - m: 要转换的map[string]string
// 返回值:
// - JSON字符串
// - 错误信息
func StringMapToJSONString(m map[string]string) (string, error) {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("map转换为JSON失败: %v", err)
	}
	return string(jsonData), nil
}
