package common

import (
	jsoniter "github.com/json-iterator/go"
)

// JSON 与encoding/json兼容的json-iterator配置,map的key按顺序输出
var JSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()
