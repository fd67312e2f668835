package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

const (
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Provider выдаёт соединение с хранилищем на время одной логической операции.
type Provider struct {
	db      *sql.DB
	timeout time.Duration
}

// NewProvider создаёт провайдер по конфигурации. Само подключение
// устанавливается лениво, в Acquire.
func NewProvider(cfg ConnConfig) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	return NewProviderFromDSN(cfg.DSN(), cfg.PoolSize, cfg.ConnectTimeout)
}

// NewProviderFromDSN создаёт провайдер по готовой строке подключения.
func NewProviderFromDSN(dsn string, poolSize int, timeout time.Duration) (*Provider, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres connection: %w", domain.ErrConnection, err)
	}
	configurePool(db, poolSize)
	return NewProviderFromDB(db, timeout), nil
}

// NewProviderFromDB оборачивает уже открытый *sql.DB (например, sqlmock в тестах).
// Настройки пула не трогает.
func NewProviderFromDB(db *sql.DB, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	return &Provider{db: db, timeout: timeout}
}

func configurePool(db *sql.DB, poolSize int) {
	if poolSize <= 0 {
		// Без простаивающих соединений: освобождённое соединение сразу закрывается.
		db.SetMaxIdleConns(0)
		return
	}
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)
}

// Acquire открывает соединение. Ошибка всегда оборачивает domain.ErrConnection,
// повторных попыток нет.
func (p *Provider) Acquire(ctx context.Context) (*sql.Conn, error) {
	if p == nil || p.db == nil {
		return nil, fmt.Errorf("%w: provider is not initialized", domain.ErrConnection)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.db.Conn(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire connection: %w", domain.ErrConnection, err)
	}
	if err := conn.PingContext(acquireCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ping: %w", domain.ErrConnection, err)
	}
	return conn, nil
}

// Ping проверяет доступность хранилища, открывая и сразу закрывая соединение.
func (p *Provider) Ping(ctx context.Context) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Stats возвращает статистику соединений *sql.DB.
func (p *Provider) Stats() sql.DBStats {
	if p == nil || p.db == nil {
		return sql.DBStats{}
	}
	return p.db.Stats()
}

// Close освобождает ресурсы драйвера.
func (p *Provider) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// withConn выполняет fn на отдельном соединении и всегда его закрывает.
func withConn(ctx context.Context, p *Provider, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// withTx открывает соединение и транзакцию: commit при успехе, rollback при ошибке,
// соединение закрывается в любом случае.
func withTx(ctx context.Context, p *Provider, opts *sql.TxOptions, fn func(ctx context.Context, tx *sql.Tx) error) error {
	return withConn(ctx, p, func(ctx context.Context, conn *sql.Conn) (err error) {
		tx, err := conn.BeginTx(ctx, opts)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}

		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		if err = fn(ctx, tx); err != nil {
			return err
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}
