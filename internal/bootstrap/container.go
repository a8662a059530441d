// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"

	"offerstack-be/internal/config"
	"offerstack-be/internal/controller"
	"offerstack-be/internal/handler"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/pkg/mailer"
	"offerstack-be/internal/repository/memory"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/internal/service"
	"offerstack-be/internal/websocket"
	"offerstack-be/pkg/admin/bundle"
	"offerstack-be/pkg/admin/campaign"
	"offerstack-be/pkg/admin/continuity"
	adminEvents "offerstack-be/pkg/admin/events"
	"offerstack-be/pkg/admin/guarantee"
	"offerstack-be/pkg/admin/salesrec"
	pkgNats "offerstack-be/pkg/nats"
	"offerstack-be/pkg/payment"
	"offerstack-be/pkg/workflow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// outboundTopic is the in-process queue feeding the workflow dispatcher.
const outboundTopic = "workflow_outbound"

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	GuaranteeController  controller.IGuaranteeController
	CampaignController   controller.ICampaignController
	SalesController      controller.ISalesController
	CatalogController    controller.ICatalogController
	ContinuityController controller.IContinuityController
	ChatController       controller.IChatController
	LeadController       controller.ILeadController
	StoreController      controller.IStoreController

	// Background workers (exposed for main.go to run)
	WorkflowDispatcher *workflow.Dispatcher

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Outbound workflow bus (in-process queue, delivered by the dispatcher)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	workflowClient := workflow.NewClient(cfg.Workflow)
	workflowBus := workflow.NewBus(pubSub, outboundTopic, sysLogger)
	workflowDispatcher := workflow.NewDispatcher(pubSub, outboundTopic, workflowClient, sysLogger)

	// 3. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	sessionRepo := memory.NewSessionRepository()

	paymentGateway := payment.NewMidtransGateway(
		cfg.Payment.MidtransServerKey,
		cfg.Payment.MidtransEnv == "production",
		sysLogger,
	)

	// 4. Admin domain components
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	guaranteeManager := guarantee.NewManager(sysLogger, adminEventPublisher, paymentGateway, emailService)
	campaignManager := campaign.NewManager(sysLogger, adminEventPublisher, paymentGateway)
	bundleResolver := bundle.NewResolver(rdb, sysLogger)
	bundleManager := bundle.NewManager(sysLogger, bundleResolver)
	salesrecManager := salesrec.NewManager(sysLogger)
	continuityManager := continuity.NewManager(sysLogger)

	// 5. Services
	authService := service.NewAuthService(uowFactory)
	guaranteeService := service.NewGuaranteeService(uowFactory, guaranteeManager)
	campaignService := service.NewCampaignService(uowFactory, campaignManager)
	salesService := service.NewSalesService(uowFactory, bundleManager, salesrecManager)
	catalogService := service.NewCatalogService(uowFactory, bundleResolver, sysLogger)
	continuityService := service.NewContinuityService(uowFactory, continuityManager)
	chatService := service.NewChatService(uowFactory, sessionRepo, workflowClient, workflowBus, adminEventPublisher, sysLogger)
	leadService := service.NewLeadService(uowFactory, adminEventPublisher, workflowBus, sysLogger)
	storeService := service.NewStoreService(uowFactory, bundleResolver)

	// 6. Admin notification hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go func() {
			if err := notifService.Start(); err != nil {
				wsLogger.Error("NOTIFY", "Failed to start notice worker", map[string]interface{}{"error": err.Error()})
			}
		}()
	}
	notifHandler := handler.NewNotificationHandler(natsPub, wsHub, wsLogger)

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		GuaranteeController:  controller.NewGuaranteeController(guaranteeService),
		CampaignController:   controller.NewCampaignController(campaignService),
		SalesController:      controller.NewSalesController(salesService),
		CatalogController:    controller.NewCatalogController(catalogService),
		ContinuityController: controller.NewContinuityController(continuityService),
		ChatController:       controller.NewChatController(chatService),
		LeadController:       controller.NewLeadController(leadService),
		StoreController:      controller.NewStoreController(storeService),

		WorkflowDispatcher: workflowDispatcher,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
