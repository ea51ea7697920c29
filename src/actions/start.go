package actions

import (
	"context"
	"fmt"

	"github.com/TendTo/MemeBot/src/actions/core"
	memeaction "github.com/TendTo/MemeBot/src/actions/meme"
	"github.com/TendTo/MemeBot/src/api"
	sharedconfig "github.com/TendTo/MemeBot/src/config"
	"github.com/TendTo/MemeBot/src/data"
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartAll prepares the schema, wires up enabled modules and starts the manager.
func StartAll(ctx context.Context, db *gorm.DB, base *zap.Logger) (*core.Manager, error) {
	log := logging.Resolve(base, "actions")
	mgr := core.NewManager()

	memeCfg := sharedconfig.LoadMemeConfig(db)
	if !memeCfg.Enabled {
		log.Info("meme module disabled via configuration")
		return mgr, mgr.Start(ctx)
	}

	if memeCfg.ResetOnLoad {
		log.Warn("reset_on_load set, dropping moderation tables")
		if err := data.Reset(db); err != nil {
			return nil, fmt.Errorf("actions: reset schema: %w", err)
		}
	} else if err := data.Migrate(db); err != nil {
		return nil, fmt.Errorf("actions: migrate: %w", err)
	}

	deps := memeaction.Deps{Store: data.NewStore(db), Logger: base}
	if memeCfg.RedisURL != "" {
		rdb, err := data.ConnectRedis(ctx, memeCfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("actions: %w", err)
		}
		deps.Conversations = data.NewRedisConversations(rdb, memeCfg.ConversationTTL)
		deps.Events = data.NewStreamSink(rdb)
		// Added first so it is closed after every module using it.
		if err := mgr.Add(&redisModule{rdb: rdb}); err != nil {
			return nil, err
		}
	} else {
		log.Info("redis not configured, conversations kept in memory and events dropped")
	}

	memeMod, err := memeaction.NewModule(&memeCfg, deps)
	if err != nil {
		return nil, fmt.Errorf("actions: init meme module: %w", err)
	}
	if err := mgr.Add(memeMod); err != nil {
		return nil, fmt.Errorf("actions: add meme module: %w", err)
	}

	apiCfg := sharedconfig.LoadAPIConfig(db)
	switch {
	case !apiCfg.Enabled:
		log.Info("api module disabled via configuration")
	case apiCfg.JWTSecret == "":
		log.Warn("api module skipped, jwt_secret not configured")
	default:
		srv, err := api.New(apiCfg, memeMod.Coordinator(), memeMod.Coordinator().Config().ReviewChannel, base)
		if err != nil {
			return nil, fmt.Errorf("actions: init api module: %w", err)
		}
		if err := mgr.Add(srv); err != nil {
			return nil, fmt.Errorf("actions: add api module: %w", err)
		}
	}

	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

// redisModule ties the shared Redis client to the manager lifecycle.
type redisModule struct {
	rdb *redis.Client
}

func (r *redisModule) Name() string { return "redis" }

func (r *redisModule) Start(context.Context) error { return nil }

func (r *redisModule) Stop(context.Context) {
	_ = r.rdb.Close()
}
