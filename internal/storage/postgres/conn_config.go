package postgres

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultHost           = "localhost"
	defaultPort           = 5432
	defaultDatabase       = "partners"
	defaultUser           = "partners"
	defaultCharset        = "UTF8"
	defaultSSLMode        = "disable"
	defaultConnectTimeout = 5 * time.Second
)

// ConnConfig — фиксированные параметры подключения к хранилищу.
// Передаётся провайдеру явно при создании, глобального состояния нет.
// Charset уходит в client_encoding. PoolSize=0 означает работу без пула:
// каждое соединение закрывается сразу после операции.
type ConnConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	Charset        string
	SSLMode        string
	ConnectTimeout time.Duration
	PoolSize       int
}

// DefaultConnConfig возвращает параметры локальной базы по умолчанию.
func DefaultConnConfig() ConnConfig {
	return ConnConfig{
		Host:           defaultHost,
		Port:           defaultPort,
		User:           defaultUser,
		Password:       defaultUser,
		Database:       defaultDatabase,
		Charset:        defaultCharset,
		SSLMode:        defaultSSLMode,
		ConnectTimeout: defaultConnectTimeout,
	}
}

// Validate проверяет, что из конфигурации можно собрать DSN.
func (c ConnConfig) Validate() error {
	if c.Host == "" {
		return errors.New("postgres host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("postgres port out of range: %d", c.Port)
	}
	if c.Database == "" {
		return errors.New("postgres database name is required")
	}
	if c.User == "" {
		return errors.New("postgres user is required")
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("postgres pool size must be non-negative: %d", c.PoolSize)
	}
	return nil
}

// DSN собирает строку подключения в URL-формате pgx.
func (c ConnConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}

	q := url.Values{}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}
	q.Set("sslmode", sslMode)
	if c.Charset != "" {
		q.Set("client_encoding", c.Charset)
	}
	if c.ConnectTimeout > 0 {
		secs := int(c.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()

	return u.String()
}
