package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// Storage 报告归档，每次写入追加一行历史记录
type Storage struct {
	db *sql.DB
}

// NewStorage 连接数据库并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	db, err := sql.Open("postgres", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func dsn(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS keyword_reports (
			id SERIAL PRIMARY KEY,
			keyword TEXT NOT NULL,
			current_articles JSONB NOT NULL,
			previous_articles JSONB NOT NULL,
			current_summary TEXT,
			trend_change TEXT,
			last_updated TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_keyword_reports_keyword ON keyword_reports (keyword, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveKeywordReport 归档一条关键词报告
func (s *Storage) SaveKeywordReport(ctx context.Context, r *model.KeywordReport) error {
	current, err := encodeArticles(r.Current)
	if err != nil {
		return err
	}
	previous, err := encodeArticles(r.Previous)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO keyword_reports (keyword, current_articles, previous_articles, current_summary, trend_change, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.Keyword, current, previous,
		removeNullBytes(r.CurrentSummary), removeNullBytes(r.TrendChange), r.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to insert keyword report: %w", err)
	}
	return nil
}

// encodeArticles JSONB 不接受 \u0000，先清理
func encodeArticles(articles []model.Article) ([]byte, error) {
	clean := make([]model.Article, len(articles))
	for i, a := range articles {
		clean[i] = model.Article{
			Title:       removeNullBytes(a.Title),
			PublishedAt: removeNullBytes(a.PublishedAt),
			TrailText:   removeNullBytes(a.TrailText),
			URL:         removeNullBytes(a.URL),
		}
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to encode articles: %w", err)
	}
	return b, nil
}

func removeNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
