package app

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"clientdesk/internal/config"
	"clientdesk/internal/domain"
	"clientdesk/internal/store"
)

// OpenStore builds the key-value store described by cfg, wrapped in the
// sealing and compression decorators it asks for. The closer releases the
// backend's connections.
func OpenStore(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (domain.KeyValueStore, io.Closer, error) {
	kv, closer, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	if cfg.Passphrase != "" {
		sealed, err := store.NewSealedStore(kv, cfg.Passphrase, store.DefaultScryptParams())
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		kv = sealed
	}
	// Outermost, so values are compressed before they are sealed.
	if cfg.Compress {
		kv = store.NewCompressedStore(kv)
	}
	log.WithFields(logrus.Fields{
		"backend":  cfg.Backend,
		"sealed":   cfg.Passphrase != "",
		"compress": cfg.Compress,
	}).Debug("store opened")
	return kv, closer, nil
}

func openBackend(ctx context.Context, cfg config.StorageConfig) (domain.KeyValueStore, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nopCloser{}, nil

	case config.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case config.BackendRedis:
		cli := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pctx, cancel := context.WithTimeout(ctx, cfg.Redis.Timeout.Duration)
		defer cancel()
		if err := cli.Ping(pctx).Err(); err != nil {
			_ = cli.Close()
			return nil, nil, err
		}
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = store.DefaultRedisPrefix
		}
		return store.NewRedisStore(cli, prefix, cfg.Redis.Timeout.Duration), cli, nil

	case config.BackendDynamoDB:
		cli, err := dynamoClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		s, err := store.NewDynamoStore(ctx, cli, cfg.DynamoDB.Table, cfg.DynamoDB.Timeout.Duration)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil

	default:
		s, err := store.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	}
}

// dynamoClient builds a DynamoDB client. A configured endpoint means a local
// emulator, which gets static credentials.
func dynamoClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.Credentials = credentials.NewStaticCredentialsProvider("x", "x", "")
		}
	}), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
