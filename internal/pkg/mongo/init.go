package mongo

import (
	"context"
	log "log/slog"
	"postflow/internal/api/config"
	"postflow/internal/pkg/logger"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Database 引用
// URL 未配置时返回 nil：此时托管存储不可用，全部会话落本地存储。
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	if cfg.URL == "" {
		log.Info("Mongo not configured, hosted store disabled")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}
