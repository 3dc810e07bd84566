package http

import (
	"fmt"
	"net/http"
	"reflect"
	"unicode"
)

// Controller 接口定义http处理器
type Controller interface {
	// GetName 控制器的名称
	GetName() string
	// GetPath 路径前缀,同一个控制器下的处理方法都挂在该路径下
	GetPath() string
	// GetHandlers 返回controller的所有处理方法,key为path,value为对应的处理方法
	GetHandlers() (map[string]http.HandlerFunc, error)
}

// BaseController 表示一个控制器
type BaseController struct {
	Name string // Controller的名称
	Path string // Controller的路径
}

// GetName implements Controller.GetName
func (p *BaseController) GetName() string {
	return p.Name
}

// GetPath implements Controller.GetPath
func (p *BaseController) GetPath() string {
	return p.Path
}

var handlerFuncType = reflect.TypeOf((func(http.ResponseWriter, *http.Request))(nil))

// ReflectHandlers 查找controller中类型为http.HandlerFunc的可导出方法,并将驼峰命名改为下划线分隔的路径
// 例如Index -> index,IncrementViews -> increment_views
func ReflectHandlers(controller Controller) (handlers map[string]http.HandlerFunc, err error) {
	val := reflect.ValueOf(controller)
	if !val.IsValid() || val.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("controller must be a valid pointer")
	}

	handlers = map[string]http.HandlerFunc{}
	controllerType := val.Type()
	for i := 0; i < val.NumMethod(); i++ {
		methodVal := val.Method(i)
		if methodVal.Type().AssignableTo(handlerFuncType) {
			handlers[ToUnderlineName(controllerType.Method(i).Name)] = methodVal.Interface().(func(http.ResponseWriter, *http.Request))
		}
	}
	return handlers, nil
}

// ToUnderlineName 将驼峰命名改为小写的下划线命名
func ToUnderlineName(camelName string) string {
	nameRune := []rune(camelName)
	normalizeName := make([]rune, 0, len(nameRune))

	for ni := 0; ni < len(nameRune); ni++ {
		if ni != 0 && unicode.IsUpper(nameRune[ni]) && unicode.IsLower(nameRune[ni-1]) {
			normalizeName = append(normalizeName, '_')
		}
		normalizeName = append(normalizeName, unicode.ToLower(nameRune[ni]))
	}
	return string(normalizeName)
}
