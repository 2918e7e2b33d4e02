package wire

import (
	"postflow/internal/api"
	"postflow/internal/api/config"
	"postflow/internal/api/handler"
	"postflow/internal/job"
	"postflow/internal/pkg/cron"
	"postflow/internal/pkg/social"
	"postflow/internal/repository"
	"postflow/internal/service"
	"postflow/internal/store"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodrv.Database, cfg *config.Config) (*ApplicationContainer, error) {
	// 变更通知走 Redis，本地与托管存储共用同一个实例
	notifier := store.NewRedisNotifier()

	local, err := store.NewLocalStore(cfg.Store.LocalDir, notifier)
	if err != nil {
		return nil, err
	}

	// Mongo 未配置时只保留本地存储
	var hosted store.Store
	if mongoDB != nil {
		hosted = store.NewFallbackStore(store.NewMongoStore(mongoDB, notifier), local)
	}
	stores := store.NewProvider(local, hosted)

	connector := social.NewConnector(cfg.Social.GraphBaseURL)

	accountRepo := repository.NewAccountRepo(db)

	authService := service.NewAuthService(accountRepo, stores)
	profileService := service.NewProfileService(stores)
	postService := service.NewPostService(stores, connector)
	composerService := service.NewComposerService(stores, connector)
	connectionService := service.NewConnectionService(stores, connector)

	handlers := &api.HandlersGroup{
		AuthHandler:       handler.NewAuthHandler(authService),
		ProfileHandler:    handler.NewProfileHandler(profileService),
		PostHandler:       handler.NewPostHandler(postService),
		ComposerHandler:   handler.NewComposerHandler(composerService),
		ConnectionHandler: handler.NewConnectionHandler(connectionService),
		MediaHandler:      handler.NewMediaHandler(),
		WsHandler:         handler.NewWsHandler(notifier),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob())

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
