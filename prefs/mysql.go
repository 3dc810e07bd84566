package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/d0ngw/chanstat/stats"
	"github.com/go-sql-driver/mysql"
)

var _ Store = (*MySQLStore)(nil)

// MySQLConf MySQL数据库配置
type MySQLConf struct {
	User          string `yaml:"user"`
	Pass          string `yaml:"pass"`
	URL           string `yaml:"url"`
	Schema        string `yaml:"schema"`
	Table         string `yaml:"table"`
	MaxConn       int    `yaml:"max_conn"`
	MaxIdle       int    `yaml:"max_idle"`
	MaxTimeSecond int    `yaml:"max_time_second"`
	Timeout       int    `yaml:"timeout"` //连接超时,单位毫秒
}

// Parse implements Configurer.Parse
func (p *MySQLConf) Parse() error {
	if p.URL == "" {
		return fmt.Errorf("need url")
	}
	if p.Schema == "" {
		return fmt.Errorf("need schema")
	}
	if p.User == "" {
		return fmt.Errorf("need user")
	}
	if p.Table == "" {
		p.Table = "preferences"
	}
	return nil
}

// DSN 构建go-sql-driver/mysql的连接串
func (p *MySQLConf) DSN() string {
	conf := mysql.NewConfig()
	conf.User = p.User
	conf.Passwd = p.Pass
	conf.Net = "tcp"
	conf.Addr = p.URL
	conf.DBName = p.Schema
	conf.ParseTime = true
	conf.Loc = time.Local
	conf.Params = map[string]string{"charset": "utf8mb4"}
	if p.Timeout > 0 {
		conf.Timeout = time.Duration(p.Timeout) * time.Millisecond
	}
	return conf.FormatDSN()
}

// MySQLStore keeps the document as a row of the MySQL preferences table
type MySQLStore struct {
	db    *sql.DB
	table string
	key   string
}

// NewMySQLStore 打开MySQL连接池并创建偏好设置表
func NewMySQLStore(conf *MySQLConf, key string) (*MySQLStore, error) {
	if conf == nil {
		return nil, errors.New("no mysql conf")
	}
	db, err := sql.Open("mysql", conf.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(conf.MaxIdle)
	db.SetMaxOpenConns(conf.MaxConn)
	if conf.MaxTimeSecond > 0 {
		db.SetConnMaxLifetime(time.Duration(conf.MaxTimeSecond) * time.Second)
	}
	if key == "" {
		key = DefaultKey
	}
	store := &MySQLStore{db: db, table: conf.Table, key: key}
	if err = store.createTable(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (p *MySQLStore) createTable() error {
	_, err := p.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"`name` VARCHAR(64) NOT NULL PRIMARY KEY,"+
		"`value` MEDIUMTEXT NOT NULL,"+
		"`updated_at` DATETIME NOT NULL"+
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4", p.table))
	return err
}

// LoadStatistics implements stats.Preferences.LoadStatistics
func (p *MySQLStore) LoadStatistics() (stats.Document, error) {
	var value string
	err := p.db.QueryRow(fmt.Sprintf("SELECT `value` FROM `%s` WHERE `name` = ?", p.table), p.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode([]byte(value))
}

// SaveStatistics implements stats.Preferences.SaveStatistics
func (p *MySQLStore) SaveStatistics(doc stats.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(fmt.Sprintf("INSERT INTO `%s` (`name`,`value`,`updated_at`) VALUES (?,?,?) "+
		"ON DUPLICATE KEY UPDATE `value` = VALUES(`value`),`updated_at` = VALUES(`updated_at`)", p.table),
		p.key, string(data), time.Now())
	return err
}

// Close implements Store.Close
func (p *MySQLStore) Close() error {
	return p.db.Close()
}
