package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	c "github.com/d0ngw/chanstat/common"
)

// Resp JSON Http响应
type Resp struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Msg     string      `json:"msg,omitempty"`
}

// GetParameter 取得由name指定的参数值
func GetParameter(r url.Values, name string) string {
	return strings.TrimSpace(r.Get(name))
}

// GetBoolParameter 取得由name指定的bool参数值,参数不存在时返回false
func GetBoolParameter(r url.Values, name string) (bool, error) {
	value := GetParameter(r, name)
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

// RenderJSON 渲染JSON
func RenderJSON(w http.ResponseWriter, status int, jsonData interface{}) {
	data, err := c.JSON.Marshal(jsonData)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err = w.Write(data); err != nil {
		c.Warnf("write response fail,err:%v", err)
	}
}

// RenderData 渲染成功的响应
func RenderData(w http.ResponseWriter, data interface{}) {
	RenderJSON(w, http.StatusOK, &Resp{Success: true, Data: data})
}

// RenderError 渲染失败的响应
func RenderError(w http.ResponseWriter, status int, msg string) {
	RenderJSON(w, status, &Resp{Success: false, Msg: msg})
}
