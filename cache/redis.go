package cache

import (
	"errors"
	"hash/fnv"

	c "github.com/d0ngw/chanstat/common"
	"github.com/gomodule/redigo/redis"
)

// Redis命令
const (
	GET    = "GET"
	SET    = "SET"
	SETEX  = "SETEX"
	DEL    = "DEL"
	EXISTS = "EXISTS"
	PING   = "PING"
)

// RedisClient 按组选择Redis实例执行命令
type RedisClient struct {
	conf *RedisConf
}

// NewRedisClient create RedisClient with parsed conf
func NewRedisClient(conf *RedisConf) *RedisClient {
	return &RedisClient{conf: conf}
}

func (p *RedisClient) server(param Param) (*RedisServer, error) {
	servers, err := p.conf.GetGroupServers(param.Group())
	if err != nil {
		return nil, err
	}
	if len(servers) == 1 {
		return servers[0], nil
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(param.Key()))
	return servers[h.Sum32()%uint32(len(servers))], nil
}

// Do 在param对应的Redis实例上执行命令
func (p *RedisClient) Do(param Param, cmd string, args ...interface{}) (reply interface{}, err error) {
	server, err := p.server(param)
	if err != nil {
		return nil, err
	}
	conn, err := server.GetConn()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.Errorf("close conn err:%v", err)
		}
	}()
	return conn.Do(cmd, args...)
}

// Get 取得key的值,key不存在时返回nil
func (p *RedisClient) Get(param Param) ([]byte, error) {
	data, err := redis.Bytes(p.Do(param, GET, param.Key()))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	return data, err
}

// Set 设置key的值,Expire大于0时设置过期时间
func (p *RedisClient) Set(param Param, value []byte) error {
	var err error
	if param.Expire() > 0 {
		_, err = p.Do(param, SETEX, param.Key(), param.Expire(), value)
	} else {
		_, err = p.Do(param, SET, param.Key(), value)
	}
	return err
}

// Del 删除key
func (p *RedisClient) Del(param Param) (deleted bool, err error) {
	return redis.Bool(p.Do(param, DEL, param.Key()))
}

// Ping 检查param所在的Redis实例是否可用
func (p *RedisClient) Ping(param Param) error {
	_, err := p.Do(param, PING)
	return err
}

// Close 关闭连接池
func (p *RedisClient) Close() error {
	return p.conf.Close()
}
