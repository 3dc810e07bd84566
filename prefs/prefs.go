// Package prefs 提供统计数据的持久化,统计数据以一个JSON对象保存在应用的偏好设置中
package prefs

import (
	"bytes"
	"fmt"

	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/stats"
)

// DefaultKey 统计数据在偏好设置中的默认key
const DefaultKey = "statistics"

// Store is the closable statistics preferences storage
type Store interface {
	stats.Preferences
	// Close release the underlying resources
	Close() error
}

// Encode 将统计数据编码为JSON,nil编码为空对象
func Encode(doc stats.Document) ([]byte, error) {
	if doc == nil {
		doc = stats.Document{}
	}
	data, err := c.JSON.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode statistics: %w", err)
	}
	return data, nil
}

// Decode 解析JSON格式的统计数据,空数据返回nil
func Decode(data []byte) (stats.Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	doc := stats.Document{}
	if err := c.JSON.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}
	return doc, nil
}
