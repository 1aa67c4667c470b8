package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpin "bloom/internal/adapters/in/http"
	"bloom/internal/adapters/out/gcs"
	"bloom/internal/adapters/out/orderapi"
	"bloom/internal/adapters/out/postgres"
	"bloom/internal/core/application/usecases/commands"
	"bloom/internal/core/application/usecases/queries"
	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/shipping"
	"bloom/internal/core/domain/services"
	"bloom/internal/core/ports"
	"bloom/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot is the only place shared collaborators are built. gormDB may be nil for
// entry points that never touch the grant ledger.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	resolver   shipping.Resolver
	engine     *services.ValidationEngine
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table := shipping.DefaultTable()
	if configs.ShippingZonesFile != "" {
		var err error
		if table, err = shipping.LoadTableFile(configs.ShippingZonesFile); err != nil {
			return CompositionRoot{}, fmt.Errorf("load shipping zones %s: %w", configs.ShippingZonesFile, err)
		}
	}

	root := CompositionRoot{
		configs:  configs,
		gormDB:   gormDB,
		resolver: shipping.NewResolver(table),
		engine:   services.NewValidationEngine(),
		logger:   logger,
	}
	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}
	return root, nil
}

func (c *CompositionRoot) ShippingResolver() shipping.Resolver {
	return c.resolver
}

func (c *CompositionRoot) ValidationEngine() *services.ValidationEngine {
	return c.engine
}

// CreateCartStore builds the one cart store an application instance owns, with attachment limits
// taken from the configuration.
func (c *CompositionRoot) CreateCartStore() (*cart.Store, error) {
	manager, err := attachment.NewManager(
		attachment.NewPreviewRegistry(),
		attachment.WithMaxCount(c.configs.MaxImages),
		attachment.WithMaxSizeMB(c.configs.MaxImageMB),
	)
	if err != nil {
		return nil, err
	}
	return cart.NewStore(manager), nil
}

func (c *CompositionRoot) CreateSubmitCheckoutCommandHandler(
	navigator ports.Navigator,
) (*commands.SubmitCheckoutCommandHandler, error) {
	client, err := orderapi.NewClient(c.configs.PresignURL, c.configs.OrdersURL)
	if err != nil {
		return nil, err
	}
	return commands.NewSubmitCheckoutCommandHandler(c.engine, commands.CheckoutEndpoints{
		Presigner:           client,
		Uploader:            client,
		Orders:              client,
		Navigator:           navigator,
		ConfirmationBaseURL: c.configs.ConfirmationBaseURL,
	}, c.logger), nil
}

func (c *CompositionRoot) CreateIssueUploadGrantCommandHandler() (commands.IssueUploadGrantCommandHandler, error) {
	signer, err := gcs.NewURLSigner(c.configs.GCSBucket, c.configs.GCSSignerEmail, c.configs.GCSSignerPrivateKey)
	if err != nil {
		return commands.IssueUploadGrantCommandHandler{}, err
	}
	return commands.NewIssueUploadGrantCommandHandler(c.grantUoWFactory(), signer, c.configs.PresignTTL, time.Now), nil
}

func (c *CompositionRoot) CreatePruneUploadGrantsCommandHandler() commands.PruneUploadGrantsCommandHandler {
	return commands.NewPruneUploadGrantsCommandHandler(c.grantUoWFactory())
}

func (c *CompositionRoot) CreateGetShippingQuoteQueryHandler() queries.GetShippingQuoteQueryHandler {
	return queries.NewGetShippingQuoteQueryHandler(c.resolver)
}

func (c *CompositionRoot) CreateEvaluateCartQueryHandler() queries.EvaluateCartQueryHandler {
	return queries.NewEvaluateCartQueryHandler(c.engine, time.Now)
}

func (c *CompositionRoot) CreateGetOrderUploadGrantsQueryHandler() queries.GetOrderUploadGrantsQueryHandler {
	return queries.NewGetOrderUploadGrantsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every HTTP use case. It fails when upload signing is not configured.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	issueUploadGrantHandler, err := c.CreateIssueUploadGrantCommandHandler()
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(
		c.resolver,
		issueUploadGrantHandler,
		c.CreateGetShippingQuoteQueryHandler(),
		c.CreateEvaluateCartQueryHandler(),
		c.CreateGetOrderUploadGrantsQueryHandler(),
		c.logger,
	), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePruneUploadGrantsCommandHandler(), c.configs.GrantRetention, c.logger)
}

func (c *CompositionRoot) grantUoWFactory() commands.UploadGrantUoWFactory {
	return FuncUploadGrantUoWFactory(func() commands.UploadGrantUoW {
		return c.uowFactory.Create()
	})
}

type FuncUploadGrantUoWFactory func() commands.UploadGrantUoW

func (f FuncUploadGrantUoWFactory) Create() commands.UploadGrantUoW {
	return f()
}
