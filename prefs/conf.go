package prefs

import (
	"fmt"
	"strings"
)

// 存储驱动
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

// DefaultFile 默认的统计文件
const DefaultFile = "statistics.json"

// Conf 偏好设置存储配置
type Conf struct {
	Driver string          `yaml:"driver"`
	Key    string          `yaml:"key"` //统计数据在偏好设置中的key
	File   string          `yaml:"file"`
	SQLite string          `yaml:"sqlite"`
	MySQL  *MySQLConf      `yaml:"mysql"`
	Redis  *RedisStoreConf `yaml:"redis"`
}

// Parse implements Configurer.Parse
func (p *Conf) Parse() error {
	p.Driver = strings.ToLower(strings.TrimSpace(p.Driver))
	if p.Driver == "" {
		p.Driver = DriverFile
	}
	if p.Key == "" {
		p.Key = DefaultKey
	}
	switch p.Driver {
	case DriverMemory:
		return nil
	case DriverFile:
		if p.File == "" {
			p.File = DefaultFile
		}
		return nil
	case DriverSQLite:
		if p.SQLite == "" {
			return fmt.Errorf("need sqlite path")
		}
		return nil
	case DriverMySQL:
		if p.MySQL == nil {
			return fmt.Errorf("need mysql conf")
		}
		return p.MySQL.Parse()
	case DriverRedis:
		if p.Redis == nil {
			return fmt.Errorf("need redis conf")
		}
		return p.Redis.Parse()
	}
	return fmt.Errorf("unknown preferences driver %s", p.Driver)
}

// Open 根据解析后的配置打开存储
func Open(conf *Conf) (Store, error) {
	if conf == nil {
		return nil, fmt.Errorf("no preferences conf")
	}
	switch conf.Driver {
	case DriverMemory:
		return NewMemoryStore(nil), nil
	case DriverFile:
		return NewFileStore(conf.File)
	case DriverSQLite:
		return NewSQLiteStore(conf.SQLite, conf.Key)
	case DriverMySQL:
		return NewMySQLStore(conf.MySQL, conf.Key)
	case DriverRedis:
		return NewRedisStore(conf.Redis, conf.Key)
	}
	return nil, fmt.Errorf("unknown preferences driver %s", conf.Driver)
}
